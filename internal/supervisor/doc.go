// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

/*
Package supervisor runs the long-lived MentorMatch services under suture v4.

The scoring core has no goroutines of its own. Everything that runs for the
lifetime of the process is added to a three-layer tree:

	RootSupervisor ("mentormatch")
	├── DataSupervisor ("data-layer")
	│   └── StoreGCService (badger backend only)
	├── MessagingSupervisor ("messaging-layer")
	│   └── events.Auditor (if EVENTS_AUDIT_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing audit subscriber restarts inside the messaging layer and never
takes the HTTP server down with it.

Supervisor lifecycle events (restarts, backoff, stop timeouts) are logged
through sutureslog. The slog logger passed to NewSupervisorTree is normally
logging.NewSlogLogger(), so those lines end up in the zerolog stream.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
