//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/unsplash-go/internal/bootstrap"
	"github.com/yanqian/unsplash-go/internal/infra/config"
	"github.com/yanqian/unsplash-go/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideClientConfig,
		provideAuthConfig,
		provideCredentialStore,
		provideAuthManager,
		provideClient,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
