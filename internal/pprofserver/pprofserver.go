package pprofserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
)

func newServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	return mux
}

// Launch a standard pprof server at ipv6 loopback address ::1 and given port.
func Launch(port string, logger *slog.Logger) {
	go func() {
		addr := fmt.Sprintf("[::1]%s", port)
		// Not "addr": the tests grab the web server address from that log key.
		logger.Info("starting pprof server", "pprof_addr", addr)
		srv := &http.Server{ //nolint:exhaustruct,gosec // local-only debug server
			Addr:    addr,
			Handler: newServeMux(),
		}
		err := srv.ListenAndServe()
		logger.Error(err.Error())
		os.Exit(0)
	}()
}
