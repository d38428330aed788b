package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"comics/assistant"
	"comics/catalog"
	"comics/config"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Chat with Mr. Effort; with no argument reads questions from stdin",
		RunE:  runAsk,
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, _, err := loadCatalog()
	if err != nil {
		return err
	}

	router := assistant.NewRouter(store, geminiFallback(ctx, store), logger)
	session := assistant.NewSession("cli")
	out := cmd.OutOrStdout()

	answer := func(q string) error {
		reply, err := router.Ask(ctx, session, q)
		if errors.Is(err, assistant.ErrDeflected) {
			reply, err = err.Error(), nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, reply)
		return nil
	}

	if len(args) > 0 {
		return answer(strings.Join(args, " "))
	}

	fmt.Fprintln(out, assistant.Greeting)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		q := strings.TrimSpace(scanner.Text())
		if q == "" {
			continue
		}
		if q == "exit" || q == "quit" {
			break
		}
		if err := answer(q); err != nil {
			return err
		}
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

// geminiFallback returns nil when no API key is configured.
func geminiFallback(ctx context.Context, store *catalog.Store) assistant.Fallback {
	key := config.GetGeminiAPIKey()
	if key == "" {
		return nil
	}
	g, err := assistant.NewGeminiFallback(ctx, key, config.GetGeminiModel(), store)
	if err != nil {
		logger.Warn("generative fallback disabled", zap.Error(err))
		return nil
	}
	return g
}
