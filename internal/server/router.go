package server

import (
	"context"
	"net/http"

	"platecheck/internal/handlers"
	applog "platecheck/internal/log"
)

const staticDir = "web/static"

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"/healthz", handlers.Health},
		{"/scan", handlers.Scan},
		{"/items/{id}/quantity", handlers.ItemQuantity},
		{"/items/{id}/serving", handlers.ItemServing},
		{"/items/{id}/included", handlers.ItemIncluded},
		{"/items.json", handlers.ItemsJSON},
		{"/scans.json", handlers.ScanHistory},
		{"/reset", handlers.Reset},
		{"/preferences", handlers.UpdatePreferences},
		{"/", handlers.Home},
	}
	for _, route := range routes {
		mux.HandleFunc(route.pattern, route.handler)
		applog.Debug(context.Background(), "route registered", "path", route.pattern)
	}

	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(staticDir))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	return mux
}
