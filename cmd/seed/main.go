// seed genera un script SQL con datos de ejemplo: categorías, materiales,
// productos con receta y un usuario admin.
//
// Uso: go run ./cmd/seed [password-admin]
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type material struct {
	id    string
	name  string
	stock int
	unit  string
	low   int
}

type bomEntry struct {
	material string // nombre del material
	qty      int
}

type product struct {
	id       string
	name     string
	desc     string
	price    string
	stock    int
	category string // nombre de la categoría
	bom      []bomEntry
}

func main() {
	adminPassword := "admin1234"
	if len(os.Args) > 1 {
		adminPassword = os.Args[1]
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de password: %v\n", err)
		os.Exit(1)
	}

	categories := []string{"Sofás", "Mesas", "Sillas", "Almacenamiento"}
	catIDs := map[string]string{}
	for _, c := range categories {
		catIDs[c] = uuid.New().String()
	}

	materials := []material{
		{uuid.New().String(), "Madera de roble", 120, "m2", 20},
		{uuid.New().String(), "Tela de lino", 80, "m", 15},
		{uuid.New().String(), "Espuma alta densidad", 60, "pcs", 10},
		{uuid.New().String(), "Herrajes de acero", 300, "pcs", 50},
		{uuid.New().String(), "Barniz natural", 40, "l", 8},
	}
	matIDs := map[string]string{}
	for _, m := range materials {
		matIDs[m.name] = m.id
	}

	products := []product{
		{uuid.New().String(), "Mesa Roble", "Mesa de comedor en roble macizo", "100.00", 5, "Mesas",
			[]bomEntry{{"Madera de roble", 3}, {"Herrajes de acero", 8}, {"Barniz natural", 1}}},
		{uuid.New().String(), "Sofá Oslo", "Sofá de tres plazas tapizado en lino", "250.00", 2, "Sofás",
			[]bomEntry{{"Madera de roble", 2}, {"Tela de lino", 6}, {"Espuma alta densidad", 4}}},
		{uuid.New().String(), "Silla Viena", "Silla de comedor con asiento tapizado", "45.00", 20, "Sillas",
			[]bomEntry{{"Madera de roble", 1}, {"Tela de lino", 1}}},
		{uuid.New().String(), "Biblioteca Alta", "Estantería de cinco baldas", "400.00", 0, "Almacenamiento",
			[]bomEntry{{"Madera de roble", 5}, {"Herrajes de acero", 12}, {"Barniz natural", 2}}},
	}

	var b strings.Builder
	b.WriteString("-- Datos de ejemplo generados por cmd/seed. No editar a mano.\n\n")

	fmt.Fprintf(&b, "INSERT INTO users (id, email, password_hash, name, role) VALUES\n")
	fmt.Fprintf(&b, "  ('%s', 'admin@mobilia.local', '%s', 'Administrador', 'admin')\n", uuid.New().String(), string(hash))
	b.WriteString("ON CONFLICT (email) DO NOTHING;\n\n")

	b.WriteString("INSERT INTO categories (id, name) VALUES\n")
	for i, c := range categories {
		sep := ","
		if i == len(categories)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s')%s\n", catIDs[c], escape(c), sep)
	}
	b.WriteString("ON CONFLICT (name) DO NOTHING;\n\n")

	b.WriteString("INSERT INTO materials (id, name, stock, unit, low_stock_threshold) VALUES\n")
	for i, m := range materials {
		sep := ","
		if i == len(materials)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', %d, '%s', %d)%s\n", m.id, escape(m.name), m.stock, m.unit, m.low, sep)
	}
	b.WriteString(";\n\n")

	b.WriteString("INSERT INTO products (id, name, description, price, stock, category_id) VALUES\n")
	for i, p := range products {
		sep := ","
		if i == len(products)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', %s, %d, '%s')%s\n",
			p.id, escape(p.name), escape(p.desc), p.price, p.stock, catIDs[p.category], sep)
	}
	b.WriteString(";\n\n")

	b.WriteString("INSERT INTO product_materials (product_id, material_id, quantity_needed) VALUES\n")
	var rows []string
	for _, p := range products {
		for _, e := range p.bom {
			rows = append(rows, fmt.Sprintf("  ('%s', '%s', %d)", p.id, matIDs[e.material], e.qty))
		}
	}
	b.WriteString(strings.Join(rows, ",\n"))
	b.WriteString(";\n")

	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "escribir %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s (%d productos, %d materiales)\n", outPath, len(products), len(materials))
}

func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
