// Example: walking every page of a shinden.pl search
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/alvarorichard/Goshinden/pkg/goshinden"
)

func main() {
	ctx := context.Background()

	client, err := goshinden.NewClient()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Searching for 'Hunter x Hunter'...")
	page, err := client.Search(ctx, "Hunter x Hunter")
	if err != nil {
		log.Fatal(err)
	}

	for {
		results, err := page.Results(ctx)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("\nPage %d of %d\n", page.Index(), page.TotalPages())
		for _, r := range results {
			fmt.Printf("  %-50s %-6s %-14s %.2f\n", r.Title, r.Kind, r.Status, r.Rating)
			fmt.Printf("    %s\n", r.SeriesURL)
		}

		page, err = page.NextPage()
		if errors.Is(err, goshinden.ErrEndOfResults) {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
	}
}
