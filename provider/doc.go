// Package provider identifies the supported e-invoice providers and keeps a
// registry of client factories.
//
// Each provider package (nes, nilvera) builds its client on top of one
// gateway.Gateway and registers a Factory under its Name:
//
//	reg := provider.NewRegistry()
//	reg.Register(provider.NES, nes.Factory)
//	reg.Register(provider.Nilvera, nilvera.Factory)
//
//	client, err := reg.Create(provider.NES, gateway.Config{Token: token})
//	report, err := client.CreditReport(ctx)
//
// A Manager keeps one client per provider for accounts that use both and
// rotates their tokens.
package provider
