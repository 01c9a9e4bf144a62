// Package watch triggers rescans when a watched directory tree changes.
//
// A Watcher registers every directory below a scan.FileSource root with fsnotify,
// adding directories created later on. Events on excluded paths and pure permission
// changes are ignored. The remaining events are debounced: the trigger runs once the
// tree has been quiet for the configured period.
//
// The trigger runs on the watcher's own goroutine, so rescans never overlap.
//
// # Usage
//
//	w, err := watch.New(src, cfg.Scan.Debounce(), func(ctx context.Context) error {
//	    _, err := idx.Rescan(ctx)
//	    return err
//	}, logger)
//	if err := w.Start(); err != nil {
//	    return err
//	}
//	defer w.Stop()
package watch
