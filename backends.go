package main

import (
	"context"
	"fmt"

	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"comics/anonchat"
	"comics/assistant"
	"comics/auth"
	"comics/config"
	"comics/db"
	"comics/reading"
	"comics/store/postgres"
	"comics/store/supabase"
)

// backends are the stores selected by STORE_BACKEND.
type backends struct {
	auth       auth.Provider
	reads      reading.ReadStore
	presence   anonchat.PresenceStore
	transcript assistant.Transcript
	blobs      anonchat.BlobStore
	closers    []func()
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackends(ctx context.Context, log *zap.Logger) (*backends, error) {
	b := &backends{
		auth:       auth.NewMemory(),
		reads:      reading.NewMemoryStore(),
		presence:   anonchat.NewMemoryPresence(),
		transcript: assistant.NewMemoryTranscript(),
		blobs:      anonchat.NewLocalStore(),
	}

	var supaClient *supa.Client
	if url, key := config.GetSupabaseURL(), config.GetSupabaseKey(); url != "" && key != "" {
		c, err := supa.NewClient(url, key, nil)
		if err != nil {
			return nil, fmt.Errorf("connect to supabase: %w", err)
		}
		supaClient = c
		b.auth = auth.NewSupabase(c)
		log.Info("using supabase auth")
	} else {
		log.Warn("SUPABASE_URL or SUPABASE_KEY not set, using in-memory auth")
	}

	switch backend := config.GetStoreBackend(); backend {
	case config.BackendSupabase:
		if supaClient == nil {
			return nil, fmt.Errorf("store backend %q needs SUPABASE_URL and SUPABASE_KEY", backend)
		}
		s := supabase.New(supaClient)
		b.reads, b.presence = s, s
	case config.BackendPostgres:
		pg, err := postgres.New(ctx, config.GetDatabaseURL())
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pg.Close)
		if err := pg.EnsureSchema(ctx); err != nil {
			b.Close()
			return nil, err
		}
		b.reads, b.presence = pg, pg
	case config.BackendMongo:
		if err := connectMongo(log); err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = db.Close() })
		b.reads = db.ReadRepository{}
	}
	log.Info("store backend selected", zap.String("backend", config.GetStoreBackend()))

	if config.GetMongoDBURI() != "" {
		if db.GetClient() == nil {
			if err := connectMongo(log); err != nil {
				b.Close()
				return nil, err
			}
			b.closers = append(b.closers, func() { _ = db.Close() })
		}
		b.transcript = db.ConversationRepository{}
	}

	if api := config.GetIPFSAPIURL(); api != "" {
		b.blobs = anonchat.NewGatewayStore(api, log)
	}
	return b, nil
}

func connectMongo(log *zap.Logger) error {
	if err := db.InitMongoDB(config.GetMongoDBURI(), config.GetMongoDatabase(), log); err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db.CreateIndexes(log)
	return nil
}
