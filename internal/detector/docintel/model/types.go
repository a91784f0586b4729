// Package model 定义证件识别引擎共享的数据类型
package model

import (
	"image"
	"strings"
)

// ============================================================
// 文档类型
// ============================================================

// DocumentType 文档类型（封闭枚举，声明顺序即平分时的优先顺序）
type DocumentType int

const (
	AadharCard DocumentType = iota
	PanCard
	Invoice
	DrivingLicense
	VoterId
	GenericIdCard
	Other
)

var documentTypeNames = [...]string{
	AadharCard:     "Aadhar Card",
	PanCard:        "PAN Card",
	Invoice:        "Invoice",
	DrivingLicense: "Driving License",
	VoterId:        "Voter ID",
	GenericIdCard:  "ID Card",
	Other:          "Other",
}

// AllDocumentTypes 按声明顺序返回全部文档类型
func AllDocumentTypes() []DocumentType {
	return []DocumentType{AadharCard, PanCard, Invoice, DrivingLicense, VoterId, GenericIdCard, Other}
}

// String 返回报告中使用的显示名称
func (t DocumentType) String() string {
	if t < AadharCard || t > Other {
		return documentTypeNames[Other]
	}
	return documentTypeNames[t]
}

// IsValid 是否为已定义的类型
func (t DocumentType) IsValid() bool {
	return t >= AadharCard && t <= Other
}

// IsSensitive 该类型的原图是否需要涂黑处理
// 发票与未识别文档不做图像脱敏
func (t DocumentType) IsSensitive() bool {
	switch t {
	case AadharCard, PanCard, DrivingLicense, VoterId, GenericIdCard:
		return true
	default:
		return false
	}
}

// MarshalText 以显示名称序列化
func (t DocumentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseDocumentType 按显示名称或常用别名解析文档类型
func ParseDocumentType(name string) (DocumentType, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	switch key {
	case "aadhar card", "aadhar", "aadhaar", "aadhaar card":
		return AadharCard, true
	case "pan card", "pan":
		return PanCard, true
	case "invoice":
		return Invoice, true
	case "driving license", "driving licence", "dl", "license":
		return DrivingLicense, true
	case "voter id", "voter", "epic":
		return VoterId, true
	case "id card", "id", "generic id card":
		return GenericIdCard, true
	case "other":
		return Other, true
	}
	return Other, false
}

// ============================================================
// 脱敏类别
// ============================================================

// MaskingKind 字段值的语义类别，决定脱敏策略
type MaskingKind int

const (
	KindGeneric MaskingKind = iota
	KindIdentifier12
	KindIdentifier10Alnum
	KindLicenseNumber
	KindVoterEpic
	KindGenericId
	KindPersonName
	KindDateDMY
	KindTaxId
	KindCurrencyAmount
	KindFreeformAddress
)

var maskingKindNames = map[MaskingKind]string{
	KindGeneric:           "generic",
	KindIdentifier12:      "identifier12",
	KindIdentifier10Alnum: "identifier10_alnum",
	KindLicenseNumber:     "license_number",
	KindVoterEpic:         "voter_epic",
	KindGenericId:         "generic_id",
	KindPersonName:        "person_name",
	KindDateDMY:           "date_dmy",
	KindTaxId:             "tax_id",
	KindCurrencyAmount:    "currency_amount",
	KindFreeformAddress:   "freeform_address",
}

// String 返回类别名称
func (k MaskingKind) String() string {
	if name, ok := maskingKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ============================================================
// OCR 词元
// ============================================================

// BoundingBox 像素坐标矩形 (x, y, width, height)
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect 转换为 image.Rectangle
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Empty 宽或高不为正时视为空框
func (b BoundingBox) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// OcrToken OCR 识别出的单个词元
type OcrToken struct {
	Text       string      `json:"text"`
	Confidence int         `json:"confidence"` // 0-100
	Box        BoundingBox `json:"bounding_box"`
}
