// Package admin serves the inspection API of a running mock server on its
// own port, leaving the mock port's route table untouched.
//
// Endpoints:
//
//	GET    /health         - Server health check
//	GET    /requests       - List request logs (method, path, status, limit, offset)
//	GET    /requests/{id}  - Get a specific request log
//	DELETE /requests       - Clear request logs
//	GET    /metrics        - Prometheus metrics
//
// Usage:
//
//	srv := mockserver.New(cfg)
//	_ = srv.Launch(ctx)
//
//	adminAPI := admin.NewAPI(cfg.AdminPort, srv, admin.WithLogger(log))
//	_ = adminAPI.Start(ctx)
package admin
