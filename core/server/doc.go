// Package server wraps http.Server with graceful shutdown and environment-driven
// configuration.
//
// The usual wiring is through an errgroup so the server stops when the
// process receives a signal:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
//
// Start binds the listener itself, so ":0" works in tests and Addr reports the
// chosen port. TLS is enabled from SERVER_TLS_CERT_FILE and
// SERVER_TLS_KEY_FILE, or with WithTLS.
package server
