package cmd

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"roodi/internal/adapters/out/postgres"
	"roodi/internal/adapters/out/postgres/bairrorepo"
	"roodi/internal/adapters/out/postgres/pricingrepo"
	"roodi/internal/adapters/out/postgres/riderrepo"
	"roodi/internal/adapters/out/providers"
	"roodi/internal/core/application/resolver"
	"roodi/internal/core/application/usecases/commands"
	"roodi/internal/core/application/usecases/queries"
	"roodi/internal/core/domain/model/quote"
	"roodi/internal/core/domain/services"
	"roodi/internal/core/ports"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	offerTTL        time.Duration
	pricingLocation *time.Location

	distanceTimeProviders []ports.DistanceTimeProvider
	climateProviders      []ports.ClimateProvider
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	location, err := time.LoadLocation(config.Timezone)
	if err != nil {
		location = time.UTC
	}

	httpClient := &http.Client{}
	bairros := bairrorepo.NewGormBairroRepository(gormDB)

	distanceTime := []ports.DistanceTimeProvider{
		providers.NewLocalBairroMatrixProvider(bairros, providers.Settings{
			Enabled:      true,
			Priority:     1,
			Timeout:      2 * time.Second,
			MaxRetries:   0,
			RetryBackoff: 0,
		}),
		providers.NewTomTomMatrixProvider(
			config.TomTomMatrixEndpoint,
			config.TomTomAPIKey,
			httpClient,
			providers.Settings{
				Enabled:      config.TomTomAPIKey != "",
				Priority:     2,
				Timeout:      5 * time.Second,
				MaxRetries:   1,
				RetryBackoff: 200 * time.Millisecond,
			},
		),
	}

	climate := []ports.ClimateProvider{
		providers.NewOpenWeatherProvider(
			config.OpenWeatherEndpoint,
			config.OpenWeatherAPIKey,
			config.RainThresholdMmH,
			httpClient,
			providers.Settings{
				Enabled:      config.OpenWeatherAPIKey != "",
				Priority:     1,
				Timeout:      3 * time.Second,
				MaxRetries:   1,
				RetryBackoff: 200 * time.Millisecond,
			},
		),
		providers.NewMetNoProvider(
			config.MetNoEndpoint,
			config.RainThresholdMmH,
			httpClient,
			providers.Settings{
				Enabled:      config.MetNoEndpoint != "",
				Priority:     2,
				Timeout:      3 * time.Second,
				MaxRetries:   1,
				RetryBackoff: 200 * time.Millisecond,
			},
		),
	}

	return CompositionRoot{
		gormDB:                gormDB,
		uowFactory:            *postgres.NewGormUnitOfWorkFactory(gormDB),
		offerTTL:              time.Duration(config.OfferTTLSeconds) * time.Second,
		pricingLocation:       location,
		distanceTimeProviders: distanceTime,
		climateProviders:      climate,
	}
}

func (c *CompositionRoot) CreateRiderDirectory() ports.RiderDirectory {
	return riderrepo.NewGormRiderDirectory(c.gormDB)
}

func (c *CompositionRoot) CreateCreateQuoteCommandHandler() commands.CreateQuoteCommandHandler {
	var f commands.QuoteUoWFactory = FuncQuoteUoWFactory(func() commands.QuoteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateQuoteCommandHandler(
		f,
		resolver.NewResolver(),
		services.NewPriceCalculator(),
		c.distanceTimeProviders,
		c.climateProviders,
		ports.ClimateResult{IsRaining: false, Source: "default", Confidence: quote.ConfidenceLow},
		c.pricingLocation,
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderCreationUoWFactory = FuncOrderCreationUoWFactory(func() commands.OrderCreationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateOpenDispatchCommandHandler() commands.OpenDispatchCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOpenDispatchCommandHandler(f, c.CreateRiderDirectory(), c.offerTTL)
}

func (c *CompositionRoot) CreateAppendOrderEventCommandHandler() commands.AppendOrderEventCommandHandler {
	var f commands.OrderEventUoWFactory = FuncOrderEventUoWFactory(func() commands.OrderEventUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAppendOrderEventCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderCancellationUoWFactory = FuncOrderCancellationUoWFactory(func() commands.OrderCancellationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOfferCommandHandler(f)
}

func (c *CompositionRoot) CreateRejectOfferCommandHandler() commands.RejectOfferCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectOfferCommandHandler(f)
}

func (c *CompositionRoot) CreateReplacePricingRulesCommandHandler() commands.ReplacePricingRulesCommandHandler {
	var f commands.PricingUoWFactory = FuncPricingUoWFactory(func() commands.PricingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReplacePricingRulesCommandHandler(f)
}

func (c *CompositionRoot) CreateApplyCreditsAdjustmentCommandHandler() commands.ApplyCreditsAdjustmentCommandHandler {
	var f commands.WalletUoWFactory = FuncWalletUoWFactory(func() commands.WalletUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyCreditsAdjustmentCommandHandler(f)
}

func (c *CompositionRoot) CreateExpireOffersCommandHandler() commands.ExpireOffersCommandHandler {
	var f commands.OfferSweepUoWFactory = FuncOfferSweepUoWFactory(func() commands.OfferSweepUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireOffersCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceDispatchCommandHandler() commands.AdvanceDispatchCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceDispatchCommandHandler(f, c.CreateRiderDirectory(), c.offerTTL)
}

func (c *CompositionRoot) CreateGetCurrentOfferQueryHandler() queries.GetCurrentOfferQueryHandler {
	return queries.NewGetCurrentOfferQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPricingRulesQueryHandler() queries.GetPricingRulesQueryHandler {
	return queries.NewGetPricingRulesQueryHandler(pricingrepo.NewGormPricingRepository(c.gormDB))
}

type FuncQuoteUoWFactory func() commands.QuoteUoW

func (f FuncQuoteUoWFactory) Create() commands.QuoteUoW {
	return f()
}

type FuncOrderCreationUoWFactory func() commands.OrderCreationUoW

func (f FuncOrderCreationUoWFactory) Create() commands.OrderCreationUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncOrderEventUoWFactory func() commands.OrderEventUoW

func (f FuncOrderEventUoWFactory) Create() commands.OrderEventUoW {
	return f()
}

type FuncOrderCancellationUoWFactory func() commands.OrderCancellationUoW

func (f FuncOrderCancellationUoWFactory) Create() commands.OrderCancellationUoW {
	return f()
}

type FuncPricingUoWFactory func() commands.PricingUoW

func (f FuncPricingUoWFactory) Create() commands.PricingUoW {
	return f()
}

type FuncWalletUoWFactory func() commands.WalletUoW

func (f FuncWalletUoWFactory) Create() commands.WalletUoW {
	return f()
}

type FuncOfferSweepUoWFactory func() commands.OfferSweepUoW

func (f FuncOfferSweepUoWFactory) Create() commands.OfferSweepUoW {
	return f()
}
