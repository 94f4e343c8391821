// seedlocations gera o script SQL que povoa as tabelas de referência de
// localizações (países, províncias e municípios) a partir das tabelas
// estáticas de internal/domain/locale. Útil para relatórios SQL; a API
// serve os dropdowns diretamente da memória.
//
// Uso: go run ./cmd/seedlocations
// Escreve: internal/infrastructure/postgres/migrations/010_seed_locations.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/orbislink/agrilink-api/internal/domain/locale"
)

func main() {
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "010_seed_locations.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "criar ficheiro: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Países, províncias e municípios suportados no registo.\n")
	out.WriteString("-- Gerado por cmd/seedlocations a partir de internal/domain/locale.\n\n")

	out.WriteString("-- 1. Países\n")
	out.WriteString("INSERT INTO locations_countries (code, name_pt, name_en, name_fr) VALUES\n")
	for i, c := range locale.Countries {
		sep := ","
		if i == len(locale.Countries)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s')%s\n",
			c.Code, escapeSQL(c.NamePT), escapeSQL(c.NameEN), escapeSQL(c.NameFR), sep)
	}
	out.WriteString("ON CONFLICT (code) DO UPDATE SET name_pt = EXCLUDED.name_pt, name_en = EXCLUDED.name_en, name_fr = EXCLUDED.name_fr;\n\n")

	provinceCount := 0
	municipalityCount := 0
	out.WriteString("-- 2. Províncias e municípios\n")
	for _, c := range locale.Countries {
		for _, p := range locale.ProvincesOf(c.Code) {
			provinceCount++
			name := escapeSQL(p.Name)
			fmt.Fprintf(out, "INSERT INTO locations_provinces (country_code, name)\n")
			fmt.Fprintf(out, "VALUES ('%s', '%s')\n", c.Code, name)
			out.WriteString("ON CONFLICT (country_code, name) DO NOTHING;\n")
			for _, m := range p.Municipalities {
				municipalityCount++
				fmt.Fprintf(out, "INSERT INTO locations_municipalities (province_id, name)\n")
				fmt.Fprintf(out, "SELECT id, '%s' FROM locations_provinces WHERE country_code = '%s' AND name = '%s'\n",
					escapeSQL(m), c.Code, name)
				out.WriteString("ON CONFLICT (province_id, name) DO NOTHING;\n")
			}
		}
	}

	fmt.Printf("Gerado %s: %d países, %d províncias, %d municípios\n",
		outPath, len(locale.Countries), provinceCount, municipalityCount)
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
