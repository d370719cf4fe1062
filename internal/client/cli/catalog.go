package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

const catalogPageSize = 50

// promptID asks for a numeric perfume id.
func (a *App) promptID(prompt string) (int64, error) {
	text, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		printlnFn("Not a valid id:", text)
		return 0, err
	}
	return id, nil
}

// List prints the first page of the catalog. A non-empty filter keeps only
// perfumes whose brand, name or type contains it, case-insensitively.
func (a *App) List(ctx context.Context, filter string) error {
	perfumes, err := a.api.ListPerfumes(ctx, 0, catalogPageSize)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	filter = strings.ToLower(strings.TrimSpace(filter))
	for _, p := range perfumes {
		if filter != "" &&
			!strings.Contains(strings.ToLower(p.Brand), filter) &&
			!strings.Contains(strings.ToLower(p.Name), filter) &&
			!strings.Contains(strings.ToLower(p.Type), filter) {
			continue
		}
		line := fmt.Sprintf("[%d] %s - %s, %.2f", p.ID, p.Brand, p.Name, p.Price)
		if a.cart.IsOutOfStock(p.ID) {
			line += " (out of stock)"
		}
		printlnFn(line)
	}
	return nil
}

// Show prompts for an id and prints the full perfume card.
func (a *App) Show(ctx context.Context) error {
	id, err := a.promptID("Enter perfume id")
	if err != nil {
		return err
	}

	p, err := a.api.GetPerfume(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("%s - %s", p.Brand, p.Name))
	printlnFn(fmt.Sprintf("Price: %.2f", p.Price))
	if p.Type != "" {
		printlnFn("Type:", p.Type)
	}
	if p.Volume > 0 {
		printlnFn(fmt.Sprintf("Volume: %d ml", p.Volume))
	}
	if p.Concentration != "" {
		printlnFn("Concentration:", p.Concentration)
	}
	printlnFn("In stock:", p.StockQuantity)
	if p.Description != "" {
		printlnFn(p.Description)
	}
	return nil
}
