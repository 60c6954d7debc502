package pdf

import (
	"strconv"
	"strings"
	"testing"
)

func buildPDF(body string) *strings.Reader {
	return strings.NewReader(body)
}

// TestParseXRefEmptyTable exercises two xref sections, the older one (at
// offset 9) empty. The newer one, reached by startxref, holds 7 entries
// (the free-list head at object 0 plus six in-use objects) and its /Prev
// leads to the empty one.
func TestParseXRefEmptyTable(t *testing.T) {
	empty := "%PDF-1.4\n" +
		"xref\n" +
		"0 0\n" +
		"trailer\n" +
		"<< /Size 0 >>\n"
	body := empty +
		"xref\n" +
		"0 7\n" +
		"0000000000 65535 f \n" +
		"0000000010 00000 n \n" +
		"0000000020 00000 n \n" +
		"0000000030 00000 n \n" +
		"0000000040 00000 n \n" +
		"0000000050 00000 n \n" +
		"0000000060 00000 n \n" +
		"trailer\n" +
		"<< /Size 7 /Root 1 0 R /Prev 9 >>\n" +
		"startxref\n" +
		strconv.Itoa(len(empty)) + "\n" +
		"%%EOF"

	table, err := ParseXRef(buildPDF(body))
	if err != nil {
		t.Fatalf("ParseXRef: %v", err)
	}
	if len(table.Entries) != 7 {
		t.Fatalf("len(Entries) = %d, want 7", len(table.Entries))
	}
	if e := table.Entries[0]; !e.Free || e.Generation != 65535 {
		t.Fatalf("entry 0 = %+v, want free head gen 65535", e)
	}
}

// TestParseXRefNumberedFromOne exercises the broken-producer variant
// where the subsection is declared "1 7" with the free head misplaced
// at object 1; ParseXRef must rebase it back to 0..6.
func TestParseXRefNumberedFromOne(t *testing.T) {
	body := "%PDF-1.4\n" +
		"xref\n" +
		"1 7\n" +
		"0000000000 65535 f \n" +
		"0000000010 00000 n \n" +
		"0000000020 00000 n \n" +
		"0000000030 00000 n \n" +
		"0000000040 00000 n \n" +
		"0000000050 00000 n \n" +
		"0000000060 00000 n \n" +
		"trailer\n" +
		"<< /Size 7 /Root 1 0 R >>\n" +
		"startxref\n" +
		"9\n" +
		"%%EOF"

	table, err := ParseXRef(buildPDF(body))
	if err != nil {
		t.Fatalf("ParseXRef: %v", err)
	}
	if len(table.Entries) != 7 {
		t.Fatalf("len(Entries) = %d, want 7", len(table.Entries))
	}
	for id := 0; id <= 6; id++ {
		if _, ok := table.Entries[id]; !ok {
			t.Fatalf("missing rebased entry %d", id)
		}
	}
	if e := table.Entries[0]; !e.Free || e.Generation != 65535 {
		t.Fatalf("rebased entry 0 = %+v, want free head gen 65535", e)
	}
}

func TestParseXRefMissingRoot(t *testing.T) {
	body := "%PDF-1.4\n" +
		"xref\n" +
		"0 1\n" +
		"0000000000 65535 f \n" +
		"trailer\n" +
		"<< /Size 1 >>\n" +
		"startxref\n" +
		"9\n" +
		"%%EOF"

	if _, err := ParseXRef(buildPDF(body)); err == nil {
		t.Fatal("expected error for trailer missing /Root")
	}
}
