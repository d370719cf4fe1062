package cli

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/dkovalev7/scentshop/internal/client/models"
)

// httpPut is a test seam for uploading to the presigned URL.
var httpPut = func(ctx context.Context, url string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}
	return nil
}

func (a *App) promptFloat(prompt string) (float64, error) {
	text, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		printlnFn("Not a valid number:", text)
		return 0, err
	}
	return v, nil
}

func (a *App) promptInt(prompt string) (int, error) {
	text, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		printlnFn("Not a valid number:", text)
		return 0, err
	}
	return v, nil
}

// AddPerfume interactively creates a catalog entry.
func (a *App) AddPerfume(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	brand, err := getSimpleText(a.reader, "Enter brand", os.Stdout)
	if err != nil {
		return err
	}
	price, err := a.promptFloat("Enter price")
	if err != nil {
		return err
	}
	ptype, err := getSimpleText(a.reader, "Enter type (male/female/unisex)", os.Stdout)
	if err != nil {
		return err
	}
	stock, err := a.promptInt("Enter stock quantity")
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	p := &models.Perfume{
		Name:          name,
		Brand:         brand,
		Price:         price,
		Type:          ptype,
		StockQuantity: stock,
		Description:   description,
		IsActive:      true,
	}

	created, err := a.api.CreatePerfume(ctx, p)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Created perfume %d", created.ID))
	return nil
}

// EditPerfume updates price and stock for an existing entry.
func (a *App) EditPerfume(ctx context.Context) error {
	id, err := a.promptID("Enter perfume id")
	if err != nil {
		return err
	}

	p, err := a.api.GetPerfume(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	price, err := a.promptFloat(fmt.Sprintf("Enter price (current %.2f)", p.Price))
	if err != nil {
		return err
	}
	stock, err := a.promptInt(fmt.Sprintf("Enter stock quantity (current %d)", p.StockQuantity))
	if err != nil {
		return err
	}

	p.Price = price
	p.StockQuantity = stock

	if _, err := a.api.UpdatePerfume(ctx, p); err != nil {
		log.Println(err.Error())
		return err
	}

	printlnFn("Updated")
	return nil
}

// RemovePerfume deactivates a catalog entry.
func (a *App) RemovePerfume(ctx context.Context) error {
	id, err := a.promptID("Enter perfume id")
	if err != nil {
		return err
	}

	if err := a.api.DeletePerfume(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}

	printlnFn("Removed")
	return nil
}

// UploadImage attaches an image to a perfume: it requests a presigned upload
// slot from the API, PUTs the file there and saves the resulting public URL
// on the perfume.
func (a *App) UploadImage(ctx context.Context) error {
	id, err := a.promptID("Enter perfume id")
	if err != nil {
		return err
	}

	path, err := getSimpleText(a.reader, "Enter image file path", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	p, err := a.api.GetPerfume(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	ticket, err := a.api.RequestImageUpload(ctx, path)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if err := httpPut(ctx, ticket.UploadURL, data); err != nil {
		log.Println(err.Error())
		return err
	}

	p.ImgURL = ticket.PublicURL
	if _, err := a.api.UpdatePerfume(ctx, p); err != nil {
		log.Println(err.Error())
		return err
	}

	printlnFn("Image uploaded:", ticket.PublicURL)
	return nil
}
