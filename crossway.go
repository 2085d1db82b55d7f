// Package crossway controls admission of concurrent vehicles into a single
// four-way intersection.
//
// Each vehicle announces its movement (origin side to destination side)
// before entering and again after leaving. The Monitor lets any number of
// vehicles inside at once as long as no two of them are on movements whose
// paths cross, and makes every waiting vehicle enter eventually.
//
//	mon := crossway.MustNewMonitor(crossway.WithLogger(crossway.LogInfo))
//	mon.BeforeEntry(crossway.North, crossway.South)
//	// ... drive through ...
//	mon.AfterExit(crossway.North, crossway.South)
//	mon.Cleanup()
package crossway
