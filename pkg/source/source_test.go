package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/connector"
	"github.com/David-Botos/data-quality/pkg/model"
)

func TestReadCSV(t *testing.T) {
	input := "name,age,active,,age\n" +
		"Ann,30,TRUE,x,1\n" +
		",,,,\n" +
		"Bob,,false,,2\n" +
		"\"Lee, Jr\",4.5,maybe\n"

	ds, err := Decode(strings.NewReader(input), FormatCSV)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	wantCols := []string{"name", "age", "active", "__EMPTY", "age_1"}
	if !reflect.DeepEqual(ds.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", ds.Columns, wantCols)
	}
	if ds.Len() != 3 {
		t.Fatalf("blank records should be skipped, got %d rows", ds.Len())
	}

	first := ds.Rows[0]
	if first["name"] != "Ann" || first["age"] != 30.0 || first["active"] != true || first["age_1"] != 1.0 {
		t.Fatalf("first row = %v", first)
	}
	if _, ok := ds.Rows[1]["age"]; ok {
		t.Fatal("empty cells should be left out of the row")
	}
	if ds.Rows[1]["active"] != false {
		t.Fatalf("lowercase false should decode as bool, got %#v", ds.Rows[1]["active"])
	}
	if ds.Rows[2]["name"] != "Lee, Jr" || ds.Rows[2]["active"] != "maybe" {
		t.Fatalf("third row = %v", ds.Rows[2])
	}
}

func TestDecodeNoUsableRows(t *testing.T) {
	cases := map[Format]string{
		FormatCSV:  "a,b\n,\n",
		FormatJSON: `[{"a": null, "b": ""}]`,
	}
	for format, input := range cases {
		if _, err := Decode(strings.NewReader(input), format); !errors.Is(err, ErrNoUsableRows) {
			t.Errorf("%s: err = %v, want ErrNoUsableRows", format, err)
		}
	}
}

func TestFormatFromName(t *testing.T) {
	if f, err := FormatFromName("data/People.XLSX"); err != nil || f != FormatXLSX {
		t.Fatalf("FormatFromName = %s, %v", f, err)
	}
	if _, err := FormatFromName("notes.txt"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestReadJSON(t *testing.T) {
	ds, err := Decode(strings.NewReader(`[{"b": 1, "a": "x"}, 42, {"a": null}]`), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("rows = %d, want 2", ds.Len())
	}
	if !reflect.DeepEqual(ds.ColumnNames(), []string{"a", "b"}) {
		t.Fatalf("columns = %v", ds.ColumnNames())
	}
	if ds.Rows[0]["b"] != 1.0 {
		t.Fatalf("b = %#v", ds.Rows[0]["b"])
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := map[string]interface{}{
		"A1": "city", "B1": "visits",
		"A2": "Oslo", "B2": 12,
		"A3": "Rome", "B3": 7.5,
	}
	for cell, value := range cells {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	ds, err := Decode(bytes.NewReader(buf.Bytes()), FormatXLSX)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(ds.Columns, []string{"city", "visits"}) {
		t.Fatalf("columns = %v", ds.Columns)
	}
	if ds.Len() != 2 || ds.Rows[0]["visits"] != 12.0 || ds.Rows[1]["city"] != "Rome" {
		t.Fatalf("rows = %v", ds.Rows)
	}
}

func TestExportCSV(t *testing.T) {
	ds := model.NewDataset([]string{"name", "age", "note"}, []model.Row{
		{"name": "Ann", "age": 30, "note": nil},
		{"name": `Bo "B"`, "age": 4.5, "note": "<ok>"},
	})

	var buf bytes.Buffer
	if err := ExportCSV(&buf, ds); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	want := "name,age,note\n" +
		`"Ann",30,""` + "\n" +
		`"Bo \"B\"",4.5,"<ok>"` + "\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestDecodeFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	if err := os.WriteFile(path, []byte("id,name\n1,Ann\n2,Bob\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if ds.Len() != 2 || ds.Rows[1]["name"] != "Bob" {
		t.Fatalf("rows = %v", ds.Rows)
	}

	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestQuoteTable(t *testing.T) {
	got, err := QuoteTable("public.people")
	if err != nil || got != `"public"."people"` {
		t.Fatalf("QuoteTable = %s, %v", got, err)
	}
	if _, err := QuoteTable("public."); err == nil {
		t.Fatal("expected an error for an empty part")
	}
}

func TestReadTableSQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := connector.NewSQLiteConnector(ctx, filepath.Join(t.TempDir(), "src.db"))
	if err != nil {
		t.Fatalf("NewSQLiteConnector: %v", err)
	}
	defer conn.Close()

	for _, stmt := range []string{
		"CREATE TABLE people (id INTEGER, name TEXT, age INTEGER)",
		"INSERT INTO people VALUES (1, 'Ann', 30), (2, 'Bob', NULL), (3, 'Cy', 41)",
	} {
		if _, err := conn.ExecWithTimeout(ctx, stmt, time.Second); err != nil {
			t.Fatalf("exec: %v", err)
		}
	}

	reader := NewTableReader(conn, zap.NewNop())
	ds, err := reader.ReadTable(ctx, "people", 2)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if !reflect.DeepEqual(ds.Columns, []string{"id", "name", "age"}) {
		t.Fatalf("columns = %v", ds.Columns)
	}
	if ds.Len() != 2 {
		t.Fatalf("limit not applied, rows = %d", ds.Len())
	}
	if ds.Rows[1]["age"] != nil {
		t.Fatalf("NULL should decode as nil, got %#v", ds.Rows[1]["age"])
	}

	if _, err := reader.ReadTable(ctx, "nope", 0); err == nil {
		t.Fatal("expected an error for a missing table")
	}
}

func TestNormalizeCell(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	tests := []struct {
		name string
		in   interface{}
		want interface{}
	}{
		{"nil", nil, nil},
		{"numeric bytes", []byte("12.5"), 12.5},
		{"numeric text", "42", float64(42)},
		{"plain text", "Ann", "Ann"},
		{"bool text", "true", true},
		{"int64", int64(7), int64(7)},
		{"time to UTC", stamp, stamp.UTC()},
		{"array", []interface{}{1.0, "a"}, `[1,"a"]`},
		{"object", map[string]interface{}{"k": "v"}, `{"k":"v"}`},
		{"typed slice", []string{"x", "y"}, `["x","y"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeCell(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeCell(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
