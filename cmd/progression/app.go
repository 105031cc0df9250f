package main

import (
	"context"

	"github.com/studyquest/progression/internal/config"
	"github.com/studyquest/progression/internal/content"
	"github.com/studyquest/progression/internal/errors"
	"github.com/studyquest/progression/internal/orchestrators/codex"
	"github.com/studyquest/progression/internal/orchestrators/continuity"
	"github.com/studyquest/progression/internal/orchestrators/experience"
	"github.com/studyquest/progression/internal/orchestrators/mastery"
	"github.com/studyquest/progression/internal/pkg/clock"
	"github.com/studyquest/progression/internal/pkg/idgen"
	redisclient "github.com/studyquest/progression/internal/redis"
	codexrepo "github.com/studyquest/progression/internal/repositories/codex"
	continuityrepo "github.com/studyquest/progression/internal/repositories/continuity"
	ledgerrepo "github.com/studyquest/progression/internal/repositories/ledger"
	masteryrepo "github.com/studyquest/progression/internal/repositories/mastery"
	"github.com/studyquest/progression/internal/services/stats"
)

// app is the CLI composition root: every orchestrator wired over one
// redis client, scoped to one profile.
type app struct {
	profileID string
	client    redisclient.Client

	experience experience.Service
	mastery    mastery.Service
	continuity continuity.Service
	codex      codex.Service
	stats      stats.Service

	// reconciled is the result of the one-time streak reconciliation
	// run during construction.
	reconciled *continuity.ReconcileOnLoadOutput
}

func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	profileID := profileFlag
	if profileID == "" {
		profileID = cfg.Profile.Default
	}

	catalogue := content.DefaultCatalogue()
	if cfg.Content.CataloguePath != "" {
		catalogue, err = content.LoadCatalogue(cfg.Content.CataloguePath)
		if err != nil {
			return nil, err
		}
	}

	client, err := redisclient.NewClient(cfg.Redis.Endpoint, &redisclient.Options{
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		ConnMaxIdleTime: cfg.Redis.ConnMaxIdleTime,
		MaxRetries:      cfg.Redis.MaxRetries,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create redis client")
	}

	clk := clock.New()
	ids := idgen.NewUUID("")
	namespace := cfg.Profile.Namespace

	ledgerRepo, err := ledgerrepo.NewRedisRepository(&ledgerrepo.Config{Client: client, Namespace: namespace})
	if err != nil {
		return nil, err
	}
	masteryRepo, err := masteryrepo.NewRedisRepository(&masteryrepo.Config{Client: client, Namespace: namespace})
	if err != nil {
		return nil, err
	}
	continuityRepo, err := continuityrepo.NewRedisRepository(&continuityrepo.Config{Client: client, Namespace: namespace})
	if err != nil {
		return nil, err
	}
	codexRepo, err := codexrepo.NewRedisRepository(&codexrepo.Config{Client: client, Namespace: namespace})
	if err != nil {
		return nil, err
	}

	experienceSvc, err := experience.NewOrchestrator(&experience.Config{
		LedgerRepo: ledgerRepo,
		Clock:      clk,
	})
	if err != nil {
		return nil, err
	}
	masterySvc, err := mastery.NewOrchestrator(&mastery.Config{
		MasteryRepo: masteryRepo,
		Clock:       clk,
	})
	if err != nil {
		return nil, err
	}
	continuitySvc, err := continuity.NewOrchestrator(&continuity.Config{
		ContinuityRepo: continuityRepo,
		Clock:          clk,
		IDGenerator:    ids,
	})
	if err != nil {
		return nil, err
	}
	codexSvc, err := codex.NewOrchestrator(&codex.Config{
		CodexRepo: codexRepo,
		Catalogue: catalogue,
	})
	if err != nil {
		return nil, err
	}
	statsSvc, err := stats.NewService(&stats.Config{
		ExperienceService: experienceSvc,
		MasteryService:    masterySvc,
		ContinuityService: continuitySvc,
	})
	if err != nil {
		return nil, err
	}

	// Lazy streak expiry runs exactly once, before any command logic.
	reconciled, err := continuitySvc.ReconcileOnLoad(ctx, &continuity.ReconcileOnLoadInput{
		ProfileID: profileID,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		profileID:  profileID,
		client:     client,
		experience: experienceSvc,
		mastery:    masterySvc,
		continuity: continuitySvc,
		codex:      codexSvc,
		stats:      statsSvc,
		reconciled: reconciled,
	}, nil
}

func (a *app) Close() error {
	return a.client.Close()
}
