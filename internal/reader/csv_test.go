package reader

import (
	"strings"
	"testing"
)

const sampleCSV = `HS Code,Item Description,Level,Unit,Basic Duty (SCH),IGST,Import Policy,Remark
,Chapter 25 - Salt; sulphur,,,,,,
2501,SALT AND PURE SODIUM CHLORIDE,-,kg,10,18,Free,Tariff
2501 0010,Common salt,---,kg,Rs. 42 / kg,18,Restricted*1,Tariff
,Supplementary note text,,,,,,notes
`

func TestCSVReader_NormalizesRows(t *testing.T) {
	p := &CSVReader{Mapping: DefaultMapping()}
	rows, err := p.Read(strings.NewReader(sampleCSV), "chapter25.csv")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	if rows[0].Description != "Chapter 25 - Salt; sulphur" {
		t.Errorf("unexpected description: %q", rows[0].Description)
	}

	// HS codes lose all embedded whitespace.
	if rows[2].Code != "25010010" {
		t.Errorf("expected whitespace-stripped code, got %q", rows[2].Code)
	}

	// Duty cells become display strings.
	if rows[1].BasicDutySch != "10.00%" {
		t.Errorf("expected 10.00%%, got %q", rows[1].BasicDutySch)
	}
	if rows[2].BasicDutySch != "42.00 INR/kg" {
		t.Errorf("expected 42.00 INR/kg, got %q", rows[2].BasicDutySch)
	}

	// Policy cells split text from note refs.
	if rows[2].ImportPolicy != "Restricted" {
		t.Errorf("expected Restricted, got %q", rows[2].ImportPolicy)
	}
	if len(rows[2].ImportPolicyRefs) != 1 || rows[2].ImportPolicyRefs[0] != "1" {
		t.Errorf("expected refs [1], got %v", rows[2].ImportPolicyRefs)
	}

	if rows[3].Remark != "notes" {
		t.Errorf("expected notes remark, got %q", rows[3].Remark)
	}
}

func TestCSVReader_EmptyInput(t *testing.T) {
	p := &CSVReader{Mapping: DefaultMapping()}
	rows, err := p.Read(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestCSVReader_RaggedRowsTolerated(t *testing.T) {
	csv := "HS Code,Item Description,Remark\n2501,Salt\n"
	p := &CSVReader{Mapping: DefaultMapping()}
	rows, err := p.Read(strings.NewReader(csv), "ragged.csv")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 || rows[0].Code != "2501" || rows[0].Remark != "" {
		t.Errorf("expected short row tolerated, got %+v", rows)
	}
}
