// Package masker 按字段语义类别对提取值做形状保持的脱敏
//
// 所有规则只依据输入的形状（长度、分隔符），
// 因此对已脱敏的值再次脱敏得到相同结果。
package masker

import (
	"strings"

	"docIntelligence/internal/detector/docintel/model"
)

// Mask 按类别脱敏，空串原样返回
func Mask(value string, kind model.MaskingKind) string {
	if value == "" {
		return ""
	}
	r := []rune(value)

	switch kind {
	case model.KindIdentifier12:
		if len(r) < 4 {
			return "XXXX XXXX XXXX"
		}
		if strings.Contains(value, " ") {
			parts := strings.Fields(value)
			return "XXXX XXXX " + parts[len(parts)-1]
		}
		return "XXXXXXXX" + string(r[len(r)-4:])

	case model.KindIdentifier10Alnum:
		if len(r) == 10 {
			return string(r[:3]) + "XX" + string(r[5:9]) + "X"
		}
		return "XXXXX1234X"

	case model.KindLicenseNumber:
		if len(r) >= 8 {
			return string(r[:4]) + strings.Repeat("X", len(r)-8) + string(r[len(r)-4:])
		}
		return "DLXXXXXXXXXX"

	case model.KindVoterEpic:
		if len(r) >= 6 {
			return string(r[:3]) + strings.Repeat("*", len(r)-6) + string(r[len(r)-3:])
		}
		return "XXX*****XXX"

	case model.KindGenericId:
		if len(r) >= 6 {
			return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
		}
		return "******"

	case model.KindPersonName:
		parts := strings.Fields(value)
		if len(parts) > 1 {
			last := []rune(parts[len(parts)-1])
			return parts[0] + " " + strings.Repeat("*", len(last))
		}
		return value

	case model.KindDateDMY:
		switch {
		case strings.Contains(value, "/"):
			parts := strings.Split(value, "/")
			return "XX/XX/" + parts[len(parts)-1]
		case strings.Contains(value, "-"):
			parts := strings.Split(value, "-")
			return "XX-XX-" + parts[len(parts)-1]
		}
		return "XX/XX/XXXX"

	case model.KindTaxId:
		if len(r) >= 5 {
			return string(r[:2]) + strings.Repeat("*", len(r)-5) + string(r[len(r)-3:])
		}
		return "XX**********XXX"

	case model.KindCurrencyAmount:
		return "₹****"

	case model.KindFreeformAddress:
		parts := strings.Split(value, ",")
		if len(parts) > 1 {
			return "***, " + strings.TrimSpace(parts[len(parts)-1])
		}
		return "***"
	}

	return strings.Repeat("*", len(r))
}

// MaskOptional nil 原样返回
func MaskOptional(value *string, kind model.MaskingKind) *string {
	if value == nil {
		return nil
	}
	masked := Mask(*value, kind)
	return &masked
}

// MaskFields 按类别表对字段表脱敏，返回新的字段表
// 未出现在 kinds 中的字段保持原值
func MaskFields(fields *model.FieldMap, kinds map[string]model.MaskingKind) *model.FieldMap {
	specs := make([]model.FieldSpec, 0, fields.Len())
	for _, f := range fields.Fields() {
		specs = append(specs, model.FieldSpec{Key: f.Key, Label: f.Label})
	}
	out := model.NewFieldMap(specs...)
	for _, f := range fields.Fields() {
		if !f.Found {
			continue
		}
		kind, ok := kinds[f.Key]
		if !ok {
			out.Set(f.Key, f.Value)
			continue
		}
		out.Set(f.Key, Mask(f.Value, kind))
	}
	return out
}
