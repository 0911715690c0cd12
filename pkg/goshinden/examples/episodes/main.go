// Example: series details, episodes and the players of the latest episode
package main

import (
	"context"
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

	anime, err := client.Anime(ctx, "https://shinden.pl/series/116-hunter-x-hunter")
	if err != nil {
		log.Fatal(err)
	}

	title, err := anime.Title(ctx)
	if err != nil {
		log.Fatal(err)
	}
	details, err := anime.Details(ctx)
	if err != nil {
		log.Fatal(err)
	}
	stats, err := anime.Stats(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s (%s, %s)\n", title, details.Kind, details.Status)
	fmt.Printf("Episodes: %d, producers: %v\n", details.Episodes.OrElse(0), details.Producers)
	fmt.Printf("Watching: %d, completed: %d, likes: %d\n", stats.CurrentlyWatching, stats.Viewed, stats.Likes)

	episodes, err := anime.Episodes(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if len(episodes) == 0 {
		return
	}

	latest := episodes[len(episodes)-1]
	fmt.Printf("\nLatest episode: %s (%s)\n", latest.Title, latest.EmissionDate)

	players, err := latest.Players(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range players {
		fmt.Printf("  %-10s audio=%s subs=%s %s by %s\n", p.Service, p.AudioLanguage, p.SubtitleLanguage, p.MaxResolution, p.Username)
	}
	if len(players) == 0 {
		return
	}

	embed, err := players[0].ExternalURL(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nEmbed: %s\n", embed)
}
