// seed_reference genera el script SQL que puebla distritos y códigos de commodity
// a partir de un catálogo XML (acepta ISO-8859-1).
//
// Uso: go run ./cmd/seed_reference [ruta/catalogo.xml]
// Por defecto lee catalogo.xml del directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_reference.up.sql
//
// Formato esperado:
//
//	<catalogo>
//	  <distrito codigo="CEN" region="Andina">Centro</distrito>
//	  <commodity codigo="7210" categoria="Izaje">Grúas</commodity>
//	</catalogo>
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// districtNamespace espacio para los UUID v5 de distritos: el mismo código
// produce siempre el mismo id y el seed puede repetirse.
var districtNamespace = uuid.MustParse("6f1c2a4e-3b7d-4c1e-9a55-0d2f8e7b1c90")

type district struct {
	Code, Name, Region string
}

type commodity struct {
	Code, Description, Category string
}

type catalogue struct {
	Districts   []district
	Commodities []commodity
}

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cat, err := parseCatalogue(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_reference.up.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeed(out, cat); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d distritos, %d códigos\n", outPath, len(cat.Districts), len(cat.Commodities))
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(charset) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "", "UTF-8":
		return input, nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", charset)
	}
}

// parseCatalogue lee el XML. Entradas sin código o sin nombre se descartan;
// un código repetido conserva la primera aparición.
func parseCatalogue(r io.Reader) (*catalogue, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("documento vacío")
	}

	cat := &catalogue{}
	seen := map[string]bool{}
	for _, el := range doc.FindElements("//distrito") {
		d := district{
			Code:   strings.ToUpper(strings.TrimSpace(el.SelectAttrValue("codigo", ""))),
			Name:   strings.TrimSpace(el.Text()),
			Region: strings.TrimSpace(el.SelectAttrValue("region", "")),
		}
		if d.Code == "" || d.Name == "" || seen["d:"+d.Code] {
			continue
		}
		seen["d:"+d.Code] = true
		cat.Districts = append(cat.Districts, d)
	}
	for _, el := range doc.FindElements("//commodity") {
		c := commodity{
			Code:        strings.TrimSpace(el.SelectAttrValue("codigo", "")),
			Description: strings.TrimSpace(el.Text()),
			Category:    strings.TrimSpace(el.SelectAttrValue("categoria", "")),
		}
		if c.Code == "" || c.Description == "" || seen["c:"+c.Code] {
			continue
		}
		seen["c:"+c.Code] = true
		cat.Commodities = append(cat.Commodities, c)
	}

	sort.Slice(cat.Districts, func(i, j int) bool { return cat.Districts[i].Code < cat.Districts[j].Code })
	sort.Slice(cat.Commodities, func(i, j int) bool { return cat.Commodities[i].Code < cat.Commodities[j].Code })
	return cat, nil
}

// writeSeed escribe INSERTs idempotentes: volver a aplicar el script no cambia nada.
func writeSeed(w io.Writer, cat *catalogue) error {
	var b strings.Builder
	b.WriteString("-- Distritos y códigos de commodity\n")
	b.WriteString("-- Generado por cmd/seed_reference\n\n")

	if len(cat.Districts) > 0 {
		b.WriteString("INSERT INTO districts (id, code, name, region) VALUES\n")
		for i, d := range cat.Districts {
			id := uuid.NewSHA1(districtNamespace, []byte(d.Code))
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', %s)", id, escapeSQL(d.Code), escapeSQL(d.Name), nullable(d.Region))
			b.WriteString(separator(i, len(cat.Districts)))
		}
		b.WriteString("ON CONFLICT (code) DO NOTHING;\n\n")
	}

	if len(cat.Commodities) > 0 {
		b.WriteString("INSERT INTO commodity_codes (code, description, category) VALUES\n")
		for i, c := range cat.Commodities {
			fmt.Fprintf(&b, "  ('%s', '%s', %s)", escapeSQL(c.Code), escapeSQL(c.Description), nullable(c.Category))
			b.WriteString(separator(i, len(cat.Commodities)))
		}
		b.WriteString("ON CONFLICT (code) DO NOTHING;\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func separator(i, n int) string {
	if i < n-1 {
		return ",\n"
	}
	return "\n"
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
