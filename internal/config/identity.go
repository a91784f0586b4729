package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"
)

// =========================================================================
// 1. 编译时注入变量 (Build-Time Variables)
// 通过 -ldflags -X 修改
// =========================================================================

var (
	// Version 软件版本
	Version string = "0.0.0-dev"

	// Vendor 厂商名称
	Vendor string = "OpenSource"

	// CommitID Git 提交哈希
	CommitID string = "HEAD"

	// BuildTime 编译时间
	BuildTime string = "Unknown"
)

// =========================================================================
// 2. 主机信息
// 报告中记录处理主机，原始 machine-id 不外泄
// =========================================================================

// HostInfo 主机信息
type HostInfo struct {
	Hostname    string `json:"hostname"`
	OS          string `json:"os"`
	Platform    string `json:"platform"`
	Fingerprint string `json:"fingerprint"`
}

var (
	hostOnce sync.Once
	hostInfo HostInfo
	hostErr  error
)

// GetHostInfo 读取主机信息（进程内缓存）
func GetHostInfo() (HostInfo, error) {
	hostOnce.Do(func() {
		info, err := host.Info()
		if err != nil {
			hostErr = fmt.Errorf("host info: %v", err)
			return
		}
		fp, err := fingerprint(info.HostID, info.Hostname)
		if err != nil {
			hostErr = err
			return
		}
		hostInfo = HostInfo{
			Hostname:    info.Hostname,
			OS:          info.OS,
			Platform:    strings.TrimSpace(info.Platform + " " + info.PlatformVersion),
			Fingerprint: fp,
		}
	})
	return hostInfo, hostErr
}

// fingerprint 使用 SHA256 规范化指纹长度，且不暴露原始信息
func fingerprint(hostID, hostname string) (string, error) {
	rawID := strings.TrimSpace(hostID)
	// 容器环境可能没有 machine-id
	if rawID == "" {
		rawID = strings.TrimSpace(hostname)
	}
	if rawID == "" {
		return "", fmt.Errorf("machine-id and hostname are empty")
	}
	hash := sha256.Sum256([]byte(rawID))
	return hex.EncodeToString(hash[:]), nil
}

// ProcessMemoryMB 当前进程常驻内存 (MB)，读取失败返回 0
func ProcessMemoryMB() float64 {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	mem, err := p.MemoryInfo()
	if err != nil || mem == nil {
		return 0
	}
	return float64(mem.RSS) / 1024 / 1024
}

// =========================================================================
// 3. 版本信息
// =========================================================================

// GetUserAgent 简短版本标识: version (vendor)
func GetUserAgent() string {
	return fmt.Sprintf("%s (%s)", limitString(Version, 32), limitString(Vendor, 32))
}

// GetFullVersionInfo 获取详细调试信息
func GetFullVersionInfo() string {
	fp := "unknown"
	if info, err := GetHostInfo(); err == nil {
		fp = limitString(info.Fingerprint, 16)
	}
	return fmt.Sprintf(
		"Version:     %s\nVendor:      %s\nCommit:      %s\nBuilt:       %s\nHost-FP:     %s",
		Version, Vendor, CommitID, BuildTime, fp,
	)
}

func limitString(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
