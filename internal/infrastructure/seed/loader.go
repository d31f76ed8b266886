// Package seed lee el catálogo inicial del servicio de productos desde un archivo JSON o CSV.
//
// Los CSV exportados desde hojas de cálculo suelen venir en ISO-8859-1 o Windows-1252;
// el charset se indica explícitamente y se convierte a UTF-8 antes de parsear.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/product-console/internal/application/dto"
	"github.com/jhoicas/product-console/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrFormat el archivo no tiene un formato de catálogo reconocible.
var ErrFormat = errors.New("formato de catálogo no soportado")

// LoadFile abre path y lo decodifica según su extensión (.json o .csv).
func LoadFile(path, charset string) ([]dto.ProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(f, charset)
	case ".csv":
		return DecodeCSV(f, charset)
	}
	return nil, fmt.Errorf("%w: %s", ErrFormat, filepath.Ext(path))
}

// DecodeJSON lee un arreglo de productos con la misma forma que devuelve /display.
func DecodeJSON(r io.Reader, charset string) ([]dto.ProductRecord, error) {
	in, err := utf8Reader(r, charset)
	if err != nil {
		return nil, err
	}
	var out []dto.ProductRecord
	if err := json.NewDecoder(in).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrFormat, err)
	}
	return out, nil
}

// DecodeCSV lee un CSV con cabecera id,name,os,price (en cualquier orden, sin distinguir mayúsculas).
// Se aceptan ',' y ';' como separador.
func DecodeCSV(r io.Reader, charset string) ([]dto.ProductRecord, error) {
	in, err := utf8Reader(r, charset)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = detectComma(text)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: csv sin cabecera", ErrFormat)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range entity.Fields {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: falta la columna %q", ErrFormat, name)
		}
	}

	var out []dto.ProductRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv línea %d: %v", ErrFormat, line, err)
		}
		get := func(name string) string {
			if i := cols[name]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		out = append(out, dto.ProductRecord{
			ID:    dto.FlexString(get(entity.FieldID)),
			Name:  get(entity.FieldName),
			OS:    get(entity.FieldOS),
			Price: dto.FlexString(get(entity.FieldPrice)),
		})
	}
	return out, nil
}

// Charset devuelve la codificación para el nombre dado.
func Charset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("charset no soportado: %q", name)
}

func utf8Reader(r io.Reader, charset string) (io.Reader, error) {
	enc, err := Charset(charset)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

func detectComma(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}
