package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"platecheck/internal/nutrition"
)

var header = []string{"file", "id", "name", "quantity", "serving", "included", "calories", "protein", "carbs", "fat"}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "mealreport: %v\n", err)
		os.Exit(1)
	}
}

// run normalises each saved recognition response and writes one CSV row per
// food plus a total row per file.
func run(paths []string, stdout, stderr io.Writer) error {
	if len(paths) == 0 {
		return errors.New("usage: mealreport <response.json> [more.json ...]")
	}

	writer := csv.NewWriter(stdout)
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("response path must not be empty")
		}
		result, err := readResponse(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, skipped := range result.Skipped {
			fmt.Fprintf(stderr, "%s: skipped %q: %v\n", filepath.Base(path), skipped.Name, skipped.Err)
		}
		for _, row := range reportRows(filepath.Base(path), result.Items) {
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func readResponse(path string) (nutrition.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nutrition.Result{}, err
	}
	defer file.Close()

	response, err := nutrition.DecodeResponse(file)
	if err != nil {
		return nutrition.Result{}, err
	}
	return nutrition.Normalize(response), nil
}

func reportRows(name string, items []nutrition.FoodItem) [][]string {
	rows := make([][]string, 0, len(items)+1)
	for _, item := range items {
		rows = append(rows, []string{
			name,
			item.ID,
			item.Name,
			strconv.Itoa(item.Quantity),
			item.SelectedServing,
			strconv.FormatBool(item.Included),
			strconv.Itoa(item.Calories),
			formatGrams(item.Protein),
			formatGrams(item.Carbs),
			formatGrams(item.Fat),
		})
	}

	totals := nutrition.Summarize(items)
	rows = append(rows, []string{
		name,
		"",
		"TOTAL",
		strconv.Itoa(totals.Included),
		"",
		"",
		strconv.Itoa(totals.Calories),
		formatGrams(totals.Protein),
		formatGrams(totals.Carbs),
		formatGrams(totals.Fat),
	})
	return rows
}

func formatGrams(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}
