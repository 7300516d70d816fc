// Command planctl drives the trip-planner backend from the terminal: log in,
// submit a request, wait for the plan, and print the itinerary with its map
// viewport. It exercises the same client stack the UI uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"tripplanner/client"
	"tripplanner/config"
	"tripplanner/models"
	"tripplanner/services/history"
	"tripplanner/services/trip"
	"tripplanner/utils"

	"go.uber.org/zap"
)

func main() {
	var (
		backendURL = flag.String("backend", "", "planner backend base URL (default from BACKEND_URL)")
		username   = flag.String("user", "", "account username")
		password   = flag.String("pass", "", "account password")
		signup     = flag.Bool("signup", false, "create the account before logging in")
		dest       = flag.String("dest", "", "trip destination")
		startDate  = flag.String("start", "", "start date (YYYY-MM-DD)")
		endDate    = flag.String("end", "", "end date (YYYY-MM-DD)")
		interests  = flag.String("interests", "", "comma-separated interests")
	)
	flag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if *username == "" || *password == "" || *dest == "" || *startDate == "" || *endDate == "" {
		fmt.Fprintln(os.Stderr, "usage: planctl -user U -pass P -dest D -start YYYY-MM-DD -end YYYY-MM-DD [-interests a,b] [-signup]")
		os.Exit(2)
	}

	baseURL := *backendURL
	if baseURL == "" {
		baseURL = config.AppConfig.BackendURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(baseURL)

	if *signup {
		if err := c.Signup(ctx, *username, *password); err != nil {
			logger.Fatal("Signup failed", zap.Error(err))
		}
		logger.Info("Account created", zap.String("username", *username))
	}

	token, err := c.Login(ctx, *username, *password)
	if err != nil {
		logger.Fatal("Login failed", zap.Error(err))
	}

	histSvc := &history.DefaultHistoryService{Backend: c, Store: historyStore()}
	lifecycle := trip.NewLifecycle(c, histSvc, trip.Config{
		PollInterval:    config.PollInterval(),
		MaxPollAttempts: config.AppConfig.MaxPollAttempts,
	})

	req := models.TripRequest{
		StartLocation: *dest,
		StartDate:     *startDate,
		EndDate:       *endDate,
		Interests:     splitInterests(*interests),
	}

	if err := lifecycle.Submit(ctx, req, token); err != nil {
		logger.Fatal("Submit failed", zap.Error(err))
	}
	logger.Info("Request submitted, waiting for the plan",
		zap.String("destination", req.StartLocation),
		zap.String("requestId", lifecycle.Status().RequestID))

	plan, err := lifecycle.Wait(ctx)
	if err != nil {
		logger.Fatal("Planning failed", zap.Error(err))
	}

	printPlan(plan)

	entries, err := histSvc.List(ctx, token)
	if err != nil {
		logger.Warn("Could not load trip history", zap.Error(err))
		return
	}
	fmt.Printf("\nYour trips (%d):\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  %s  %s -> %s\n", e.Destination, e.StartDate, e.EndDate)
	}
}

// historyStore picks the configured cache backend.
func historyStore() history.Store {
	if config.AppConfig.HistoryStore == "redis" {
		return history.NewRedisStore(utils.GetHistoryCacheClient(), 0)
	}
	return history.NewMemoryStore()
}

func splitInterests(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func printPlan(plan *models.TripPlan) {
	center, bounds := trip.Viewport(plan)
	fmt.Printf("Trip %s: %d days\n", plan.TripID, len(plan.Days))
	if bounds != nil {
		fmt.Printf("Map view: center (%.4f, %.4f), bounds [%.4f..%.4f] x [%.4f..%.4f]\n",
			center.Lat, center.Lng, bounds.MinLat, bounds.MaxLat, bounds.MinLng, bounds.MaxLng)
	} else {
		fmt.Printf("Map view: center (%.4f, %.4f)\n", center.Lat, center.Lng)
	}

	for i, day := range plan.Days {
		fmt.Printf("\nDay %d: %s\n", i+1, day.Description)
		for _, label := range day.SlotLabels() {
			point := day.Slots[label]
			name := point.PlaceName
			if name == "" {
				name = point.Description
			}
			fmt.Printf("  %-8s %s\n", label, name)
		}
	}

	if route := trip.BuildRouteGeometry(plan); route != nil {
		fmt.Printf("\nRoute: %d points\n", len(route.Points))
	}
}
