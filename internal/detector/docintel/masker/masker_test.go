package masker

import (
	"testing"

	"docIntelligence/internal/detector/docintel/model"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name  string
		value string
		kind  model.MaskingKind
		want  string
	}{
		{"aadhar grouped", "1234 5678 9012", model.KindIdentifier12, "XXXX XXXX 9012"},
		{"aadhar compact", "123456789012", model.KindIdentifier12, "XXXXXXXX9012"},
		{"aadhar short", "12", model.KindIdentifier12, "XXXX XXXX XXXX"},
		{"pan", "ABCDE1234F", model.KindIdentifier10Alnum, "ABCXX1234X"},
		{"pan bad length", "ABCDE", model.KindIdentifier10Alnum, "XXXXX1234X"},
		{"dl", "MH12 2011 0012345", model.KindLicenseNumber, "MH12XXXXXXXXX2345"},
		{"dl short", "MH12", model.KindLicenseNumber, "DLXXXXXXXXXX"},
		{"epic", "ABC1234567", model.KindVoterEpic, "ABC****567"},
		{"epic short", "ABC", model.KindVoterEpic, "XXX*****XXX"},
		{"id", "EMP123456", model.KindGenericId, "*****3456"},
		{"id short", "E12", model.KindGenericId, "******"},
		{"name", "Ravi Kumar", model.KindPersonName, "Ravi *****"},
		{"single name", "Ravi", model.KindPersonName, "Ravi"},
		{"date slash", "15/08/1990", model.KindDateDMY, "XX/XX/1990"},
		{"date dash", "15-08-1990", model.KindDateDMY, "XX-XX-1990"},
		{"date dots", "15.08.1990", model.KindDateDMY, "XX/XX/XXXX"},
		{"gstin", "27ABCDE1234F1Z5", model.KindTaxId, "27**********1Z5"},
		{"gstin short", "27A", model.KindTaxId, "XX**********XXX"},
		{"amount", "1,180.00", model.KindCurrencyAmount, "₹****"},
		{"address", "12 MG Road, Pune", model.KindFreeformAddress, "***, Pune"},
		{"address single", "MG Road", model.KindFreeformAddress, "***"},
		{"generic", "héllo", model.KindGeneric, "*****"},
		{"empty", "", model.KindPersonName, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mask(tt.value, tt.kind); got != tt.want {
				t.Errorf("Mask(%q, %v) = %q, want %q", tt.value, tt.kind, got, tt.want)
			}
		})
	}
}

func TestMask_Idempotent(t *testing.T) {
	tests := []struct {
		value string
		kind  model.MaskingKind
	}{
		{"1234 5678 9012", model.KindIdentifier12},
		{"123456789012", model.KindIdentifier12},
		{"1", model.KindIdentifier12},
		{"ABCDE1234F", model.KindIdentifier10Alnum},
		{"AB", model.KindIdentifier10Alnum},
		{"KA-01-2015-1234567", model.KindLicenseNumber},
		{"KA", model.KindLicenseNumber},
		{"ABC1234567", model.KindVoterEpic},
		{"AB", model.KindVoterEpic},
		{"STU2023001", model.KindGenericId},
		{"ID1", model.KindGenericId},
		{"Ravi Kumar Sharma", model.KindPersonName},
		{"01/01/2001", model.KindDateDMY},
		{"01-01-2001", model.KindDateDMY},
		{"27ABCDE1234F1Z5", model.KindTaxId},
		{"27", model.KindTaxId},
		{"999.00", model.KindCurrencyAmount},
		{"Flat 3, MG Road, Pune", model.KindFreeformAddress},
		{"secret", model.KindGeneric},
	}
	for _, tt := range tests {
		once := Mask(tt.value, tt.kind)
		twice := Mask(once, tt.kind)
		if once != twice {
			t.Errorf("kind %v: Mask(%q) = %q, Mask(Mask) = %q", tt.kind, tt.value, once, twice)
		}
	}
}

func TestMaskOptional(t *testing.T) {
	if MaskOptional(nil, model.KindPersonName) != nil {
		t.Error("nil should pass through")
	}
	v := "ABCDE1234F"
	got := MaskOptional(&v, model.KindIdentifier10Alnum)
	if got == nil || *got != "ABCXX1234X" {
		t.Errorf("MaskOptional = %v", got)
	}
	if v != "ABCDE1234F" {
		t.Error("input must not be modified")
	}
}

func TestMaskFields(t *testing.T) {
	raw := model.NewFieldMap(
		model.FieldSpec{Key: "PAN_Number"},
		model.FieldSpec{Key: "Name"},
		model.FieldSpec{Key: "Issue_Date"},
		model.FieldSpec{Key: "DOB"},
	)
	raw.Set("PAN_Number", "ABCDE1234F")
	raw.Set("Name", "Ravi Kumar")
	raw.Set("Issue_Date", "01/01/2020")

	masked := MaskFields(raw, map[string]model.MaskingKind{
		"PAN_Number": model.KindIdentifier10Alnum,
		"Name":       model.KindPersonName,
		"DOB":        model.KindDateDMY,
	})
	if got := masked.Value("PAN_Number"); got != "ABCXX1234X" {
		t.Errorf("PAN_Number = %q", got)
	}
	if got := masked.Value("Issue_Date"); got != "01/01/2020" {
		t.Errorf("Issue_Date = %q, want unmasked", got)
	}
	if masked.Has("DOB") == false || masked.FoundCount() != 3 {
		t.Errorf("masked fields = %+v", masked.Fields())
	}
	if raw.Value("Name") != "Ravi Kumar" {
		t.Error("raw map must not be modified")
	}
}
