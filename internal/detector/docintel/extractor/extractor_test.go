package extractor

import (
	"reflect"
	"testing"

	"docIntelligence/internal/detector/docintel/model"
)

const (
	aadharText = "UIDAI\nName: Ravi Kumar\n1234 5678 9012\nDOB: 15/08/1990\nAddress: 12 MG Road, Pune"

	panText = "INCOME TAX DEPARTMENT\nGOVT. OF INDIA\nName\nRAVI KUMAR\nFather's Name\nSURESH KUMAR\n" +
		"Date of Birth\n15/08/1990\nPermanent Account Number\nABCDE1234F"

	invoiceText = "ACME TRADERS PVT LTD\nTAX INVOICE\nInvoice No: INV-2024-001\nDate: 12/03/2024\n" +
		"GSTIN: 27ABCDE1234F1Z5\nSub Total: 1,000.00\nTotal: ₹1,180.00"

	licenseText = "Driving Licence\nDL No: MH12 2011 0012345\nName: Ravi Kumar\nS/O: Suresh Kumar\n" +
		"DOB: 15-08-1990\nIssue Date: 01-02-2015\nValid Till: 31-01-2035\nBlood Group: B+\nAddress: 12 MG Road, Pune"

	voterText = "ELECTION COMMISSION OF INDIA\nELECTOR PHOTO IDENTITY CARD\nABC1234567\n" +
		"Elector's Name: Ravi Kumar\nFather's Name: Suresh Kumar\nDate of Birth: 15/08/1990\nAddress: 12 MG Road, Pune"

	idCardText = "ACME Corporation\nEmployee Identity Card\nName: Priya Sharma\nEmployee ID EMP123456\n" +
		"Designation: Software Engineer\nDepartment: Engineering\nCompany: ACME Corporation\nValid Till: 31/12/2026"
)

type fieldCase struct {
	key    string
	raw    string // 空串表示未找到
	masked string
}

func checkFields(t *testing.T, e Extractor, text string, cases []fieldCase) {
	t.Helper()
	raw := e.Extract(text, false)
	red := e.Extract(text, true)
	for _, c := range cases {
		if got := raw.Value(c.key); got != c.raw {
			t.Errorf("raw %s = %q, want %q", c.key, got, c.raw)
		}
		if got := red.Value(c.key); got != c.masked {
			t.Errorf("masked %s = %q, want %q", c.key, got, c.masked)
		}
	}
}

func TestAadharExtractor(t *testing.T) {
	checkFields(t, NewAadharExtractor(), aadharText, []fieldCase{
		{"Aadhar_Number", "1234 5678 9012", "XXXX XXXX 9012"},
		{"Name", "Ravi Kumar", "Ravi *****"},
		{"DOB", "15/08/1990", "XX/XX/1990"},
		{"Address", "12 MG Road, Pune", "***, Pune"},
	})
}

func TestAadharExtractor_OcrNoise(t *testing.T) {
	text := "GOVT. OF INDIA\nRAVI KUMAR\n1234 56789O12\nYear of Birth 1990"
	fields := NewAadharExtractor().Extract(text, false)
	if got := fields.Value("Aadhar_Number"); got != "1234 56789012" {
		t.Errorf("Aadhar_Number = %q", got)
	}
	// 无 name 标签时取前 8 行中第一个纯字母行
	if got := fields.Value("Name"); got != "Ravi Kumar" {
		t.Errorf("Name = %q", got)
	}
	if fields.Has("DOB") == false {
		t.Error("DOB key must be present")
	}
	if _, ok := fields.Get("DOB"); ok {
		t.Error("DOB should be not found")
	}
}

func TestFallbackName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"letters only", "Ravi Cardoza\n1234 5678 9012", "Ravi Cardoza"},
		{"looks like header", "INDIANA JONES\n1234 5678 9012", "Indiana Jones"},
		{"skips punctuation", "GOVT. OF INDIA\nPriya Sharma\n1234 5678 9012", "Priya Sharma"},
		{"too short", "Ravi\n1234 5678 9012", ""},
		{"beyond 8 lines", "1\n2\n3\n4\n5\n6\n7\n8\nRavi Kumar", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewAadharExtractor().Extract(tt.text, false).Value("Name"); got != tt.want {
				t.Errorf("Name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindAddress(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		masked string
	}{
		{
			"bare label then two lines",
			"UIDAI\nName: Ravi Kumar\nAddress:\nFlat 4, Street: MG Road\nPune 411001",
			"Flat 4, Street: MG Road, Pune 411001",
			"***, Pune 411001",
		},
		{
			"label without colon",
			"UIDAI\nAddress\n12 MG Road\nPune",
			"12 MG Road, Pune",
			"***, Pune",
		},
		{
			"prefixed label",
			"Name: Ravi Kumar\nPermanent Address: 12 MG Road, Pune",
			"12 MG Road, Pune",
			"***, Pune",
		},
		{
			"at most two following lines",
			"Address: 12 MG Road\nShivaji Nagar\nPune\nMaharashtra",
			"12 MG Road, Shivaji Nagar, Pune",
			"***, Pune",
		},
		{
			"relative trigger",
			"Name: Ravi Kumar\nS/O Suresh Kumar\n12 MG Road\nPune",
			"S/O Suresh Kumar, 12 MG Road, Pune",
			"***, Pune",
		},
		{"no trigger", "UIDAI\nName: Ravi Kumar", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkFields(t, NewAadharExtractor(), tt.text, []fieldCase{{"Address", tt.want, tt.masked}})
		})
	}
}

func TestPanExtractor(t *testing.T) {
	checkFields(t, NewPanExtractor(), panText, []fieldCase{
		{"PAN_Number", "ABCDE1234F", "ABCXX1234X"},
		{"Name", "RAVI KUMAR", "RAVI *****"},
		{"Father_Name", "SURESH KUMAR", "SURESH *****"},
		{"DOB", "15/08/1990", "XX/XX/1990"},
	})
}

func TestInvoiceExtractor(t *testing.T) {
	checkFields(t, NewInvoiceExtractor(), invoiceText, []fieldCase{
		{"Invoice_Number", "INV-2024-001", "INV-2024-001"},
		{"Total_Amount", "1,180.00", "₹****"},
		{"Date", "12/03/2024", "12/03/2024"},
		{"GST_Number", "27ABCDE1234F1Z5", "27**********1Z5"},
		{"Company_Name", "ACME TRADERS PVT LTD", "ACME TRADERS PVT LTD"},
	})
}

func TestInvoiceExtractor_NumberNeedsDigit(t *testing.T) {
	fields := NewInvoiceExtractor().Extract("TAX INVOICE\nBill To: Ravi", false)
	if v, ok := fields.Get("Invoice_Number"); ok {
		t.Errorf("Invoice_Number = %q, want not found", v)
	}
}

func TestLicenseExtractor(t *testing.T) {
	checkFields(t, NewLicenseExtractor(), licenseText, []fieldCase{
		{"DL_Number", "MH12 2011 0012345", "MH12XXXXXXXXX2345"},
		{"Name", "Ravi Kumar", "Ravi *****"},
		{"DOB", "15-08-1990", "XX-XX-1990"},
		{"Issue_Date", "01-02-2015", "01-02-2015"},
		{"Expiry_Date", "31-01-2035", "31-01-2035"},
		{"Blood_Group", "B+", "B+"},
		{"Address", "12 MG Road, Pune", "***, Pune"},
	})
}

func TestLicenseExtractor_CompactNumber(t *testing.T) {
	fields := NewLicenseExtractor().Extract("DRIVING LICENCE\nDL0420110149646", false)
	if got := fields.Value("DL_Number"); got != "DL0420110149646" {
		t.Errorf("DL_Number = %q", got)
	}
}

func TestVoterExtractor(t *testing.T) {
	checkFields(t, NewVoterExtractor(), voterText, []fieldCase{
		{"Voter_ID", "ABC1234567", "ABC****567"},
		{"Name", "Ravi Kumar", "Ravi *****"},
		{"Father_Name", "Suresh Kumar", "Suresh *****"},
		{"DOB", "15/08/1990", "XX/XX/1990"},
		{"Address", "12 MG Road, Pune", "***, Pune"},
	})
}

func TestVoterExtractor_Husband(t *testing.T) {
	text := "ELECTION COMMISSION OF INDIA\nABC1234567\nHusband's Name: Amit Shah\nName: Priya Shah"
	checkFields(t, NewVoterExtractor(), text, []fieldCase{
		{"Name", "Priya Shah", "Priya ****"},
		{"Father_Name", "Amit Shah", "Amit ****"},
	})

	// 其他类型只排除 father，husband 行被当作姓名标签
	if got := NewAadharExtractor().Extract(text, false).Value("Name"); got != "Amit Shah" {
		t.Errorf("aadhar Name = %q", got)
	}
}

func TestIdCardExtractor(t *testing.T) {
	checkFields(t, NewIdCardExtractor(), idCardText, []fieldCase{
		{"ID_Number", "EMP123456", "*****3456"},
		{"Name", "Priya Sharma", "Priya ******"},
		{"DOB", "", ""},
		{"Designation", "Software Engineer", "Software Engineer"},
		{"Department", "Engineering", "Engineering"},
		{"Organization", "ACME Corporation", "ACME Corporation"},
		{"Issue_Date", "", ""},
		{"Expiry_Date", "31/12/2026", "31/12/2026"},
	})
}

func TestIdCardExtractor_NumericFallback(t *testing.T) {
	fields := NewIdCardExtractor().Extract("STUDENT CARD\nRoll 2O23001", false)
	if got := fields.Value("ID_Number"); got != "2023001" {
		t.Errorf("ID_Number = %q", got)
	}
}

func TestOtherExtractor(t *testing.T) {
	fields := NewOtherExtractor().Extract("anything at all", true)
	if fields.Len() != 0 {
		t.Errorf("Other should have no fields, got %v", fields.Keys())
	}
}

func TestRegistry_KeysContract(t *testing.T) {
	want := map[model.DocumentType][]string{
		model.AadharCard:     {"Aadhar_Number", "Name", "DOB", "Address"},
		model.PanCard:        {"PAN_Number", "Name", "Father_Name", "DOB"},
		model.Invoice:        {"Invoice_Number", "Total_Amount", "Date", "GST_Number", "Company_Name"},
		model.DrivingLicense: {"DL_Number", "Name", "DOB", "Issue_Date", "Expiry_Date", "Blood_Group", "Address"},
		model.VoterId:        {"Voter_ID", "Name", "Father_Name", "DOB", "Address"},
		model.GenericIdCard:  {"ID_Number", "Name", "DOB", "Designation", "Department", "Organization", "Issue_Date", "Expiry_Date"},
	}
	r := NewRegistry()
	for dt, keys := range want {
		e := r.Get(dt)
		if e.DocumentType() != dt {
			t.Errorf("Get(%v) returned %v extractor", dt, e.DocumentType())
		}
		if !reflect.DeepEqual(e.Keys(), keys) {
			t.Errorf("%v keys = %v, want %v", dt, e.Keys(), keys)
		}
		// 空文本也必须包含全部键
		if got := e.Extract("", true).Keys(); !reflect.DeepEqual(got, keys) {
			t.Errorf("%v empty-text keys = %v", dt, got)
		}
	}
	if r.Get(model.DocumentType(77)).DocumentType() != model.Other {
		t.Error("unknown type should dispatch to Other")
	}
}

func TestExtract_RedactKeepsPresence(t *testing.T) {
	texts := []string{aadharText, panText, invoiceText, licenseText, voterText, idCardText, "", "random words 42"}
	for _, dt := range model.AllDocumentTypes() {
		for _, text := range texts {
			raw := Extract(dt, text, false).MissingKeys()
			red := Extract(dt, text, true).MissingKeys()
			if !reflect.DeepEqual(raw, red) {
				t.Errorf("%v: missing keys differ raw=%v redacted=%v", dt, raw, red)
			}
		}
	}
}

func TestExtract_Labels(t *testing.T) {
	fields := For(model.PanCard).Extract(panText, true)
	labels := map[string]string{}
	for _, f := range fields.Fields() {
		labels[f.Key] = f.Label
	}
	if labels["Father_Name"] != "Father's Name" || labels["DOB"] != "Date of Birth" {
		t.Errorf("labels = %v", labels)
	}
}
