package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/api"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/bank"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/config"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/dao"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/dao/store"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/multisig"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/staking"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/token"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/wallet"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Bootstrap the governance engine and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}
}

func runServe(cfg *config.Config) error {
	params, err := cfg.Governance.Params()
	if err != nil {
		return fmt.Errorf("invalid governance parameters: %w", err)
	}
	initialMint, err := dao.ParseUnits(cfg.Governance.InitialMint)
	if err != nil {
		return fmt.Errorf("invalid initial mint: %w", err)
	}

	deployer, err := wallet.New()
	if err != nil {
		return fmt.Errorf("failed to create deployer wallet: %w", err)
	}
	engineWallet, err := wallet.New()
	if err != nil {
		return fmt.Errorf("failed to create engine wallet: %w", err)
	}
	adminWallet, err := wallet.New()
	if err != nil {
		return fmt.Errorf("failed to create admin gateway wallet: %w", err)
	}
	panicWallet, err := wallet.New()
	if err != nil {
		return fmt.Errorf("failed to create panic gateway wallet: %w", err)
	}

	adminOwners, err := gatewayOwners("admin", cfg.Multisig.Admin)
	if err != nil {
		return err
	}
	panicOwners, err := gatewayOwners("panic", cfg.Multisig.Panic)
	if err != nil {
		return err
	}

	// Deployment order mirrors the governance bootstrap: the token is
	// minted and handed to the engine before ownership moves to the
	// admin gateway, so every later mint has to clear the multisig.
	tokens := token.NewLedger(deployer.Address)
	if err := tokens.Mint(deployer.Address, engineWallet.Address, initialMint); err != nil {
		return fmt.Errorf("initial mint failed: %w", err)
	}
	if err := tokens.TransferOwnership(deployer.Address, engineWallet.Address); err != nil {
		return fmt.Errorf("token ownership handover failed: %w", err)
	}

	nativeBank := bank.NewLedger()
	stakes := staking.NewLedger()
	proposals := store.NewMemoryStore()

	service := dao.NewService(engineWallet.Address, deployer.Address, tokens, nativeBank, stakes, proposals, dao.SystemClock{}, params)
	router := dao.NewRouter(service, nativeBank)

	adminGateway, err := multisig.NewGateway(adminWallet.Address, adminOwners, cfg.Multisig.Admin.RequiredConfirmations, router)
	if err != nil {
		return fmt.Errorf("failed to create admin gateway: %w", err)
	}
	panicGateway, err := multisig.NewGateway(panicWallet.Address, panicOwners, cfg.Multisig.Panic.RequiredConfirmations, router)
	if err != nil {
		return fmt.Errorf("failed to create panic gateway: %w", err)
	}

	if err := service.SetPanicWallet(deployer.Address, panicGateway.Address()); err != nil {
		return fmt.Errorf("failed to arm panic wallet: %w", err)
	}
	if err := service.TransferOwnership(deployer.Address, adminGateway.Address()); err != nil {
		return fmt.Errorf("ownership handover failed: %w", err)
	}

	log.Info().
		Str("engine", engineWallet.Address).
		Str("adminGateway", adminGateway.Address()).
		Str("panicGateway", panicGateway.Address()).
		Str("initialMint", initialMint.String()).
		Msg("Governance engine deployed")

	server := api.NewServer(service, nativeBank, tokens, adminGateway, panicGateway, cfg.API.Port)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Stop(ctx)
}

// gatewayOwners resolves a gateway's owner set, generating fresh wallets when
// none are configured. Generated addresses are logged so operators can use
// them against the multisig endpoints.
func gatewayOwners(role string, gc config.GatewayConfig) ([]string, error) {
	if len(gc.Owners) > 0 {
		return gc.Owners, nil
	}

	owners := make([]string, 0, gc.RequiredConfirmations+1)
	for i := 0; i <= gc.RequiredConfirmations; i++ {
		w, err := wallet.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create %s gateway owner: %w", role, err)
		}
		owners = append(owners, w.Address)
		log.Info().Str("role", role).Str("owner", w.Address).Msg("Generated gateway owner")
	}
	return owners, nil
}
