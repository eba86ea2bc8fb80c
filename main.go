package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/foodiespot/assistant/agent/classifier"
	contractx "github.com/foodiespot/assistant/agent/contract"
	"github.com/foodiespot/assistant/agent/dispatcher"
	handlerx "github.com/foodiespot/assistant/agent/handler"
	"github.com/foodiespot/assistant/agent/knowledge"
	ledgerx "github.com/foodiespot/assistant/agent/ledger"
	llmx "github.com/foodiespot/assistant/agent/llm"
	promptx "github.com/foodiespot/assistant/agent/prompt"
	"github.com/foodiespot/assistant/agent/synthesizer"
	configx "github.com/foodiespot/assistant/pkg/config"
	_ "github.com/foodiespot/assistant/pkg/logger/autoload"
)

type AppConfig struct {
	RestaurantDBPath string `envconfig:"RESTAURANT_DB_PATH" split_words:"true" default:"knowledge_base/restaurant_db.json"`
	MenuDBPath       string `envconfig:"MENU_DB_PATH" split_words:"true" default:"knowledge_base/menu.json"`
	ReservationsPath string `envconfig:"RESERVATIONS_PATH" split_words:"true" default:"knowledge_base/reservations.json"`
	DatabaseURL      string `envconfig:"DATABASE_URL" split_words:"true"`
	SlotCapacity     int    `envconfig:"SLOT_CAPACITY" split_words:"true" default:"50"`
	PricePolicy      string `envconfig:"PRICE_POLICY" split_words:"true" default:"first-match"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("FOODIESPOT")
	oracleCfg := configx.MustNew[llmx.Config]("ORACLE")
	oracle := llmx.MustNewClient(*oracleCfg)

	pricePolicy, err := handlerx.ParsePricePolicy(appCfg.PricePolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid price policy")
	}

	// Reference data is required at startup; an unreadable source is fatal.
	var source knowledge.Source
	if appCfg.DatabaseURL != "" {
		pg := knowledge.NewPostgresSource(appCfg.DatabaseURL)
		defer pg.Close()
		source = pg
	} else {
		source = knowledge.FileSource{
			RestaurantPath: appCfg.RestaurantDBPath,
			MenuPath:       appCfg.MenuDBPath,
		}
	}
	store, err := knowledge.NewStore(ctx, source)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load knowledge store")
	}

	ledger := ledgerx.Open(appCfg.ReservationsPath, appCfg.SlotCapacity)
	prompts := promptx.LoadSet()

	registry := handlerx.NewRegistry(handlerx.Deps{
		Oracle:      oracle,
		Prompts:     prompts,
		Store:       store,
		Ledger:      ledger,
		PricePolicy: pricePolicy,
	})

	d, err := dispatcher.New(
		classifier.New(oracle, prompts.ClassifyIntent),
		synthesizer.New(oracle, prompts.Respond),
		registry,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build dispatcher")
	}

	runChat(ctx, d)
}

// runChat is a minimal stdin chat loop. The transcript is owned here, not by
// the engine.
func runChat(ctx context.Context, d *dispatcher.Dispatcher) {
	fmt.Println("FoodieSpot assistant ready. Ask me anything about restaurants (ctrl-d to quit).")

	var history []contractx.Turn
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := scanner.Text()
		if message == "" {
			continue
		}

		reply, err := d.ProcessChat(ctx, message, history)
		if err != nil {
			log.Error().Err(err).Msg("chat request failed")
			fmt.Println("Sorry, something went wrong. Please try again.")
			continue
		}

		fmt.Println(reply)
		history = append(history,
			contractx.Turn{Role: contractx.RoleUser, Content: message},
			contractx.Turn{Role: contractx.RoleAssistant, Content: reply},
		)
	}
}
