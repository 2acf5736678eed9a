// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package logging configures the process-wide slog logger.

	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal(err)
	}

Formats are "tint" (colored, for terminals), "text" and "json". With no
format given, tint is used when stderr is a terminal and text otherwise, so
piped or containerized output stays machine readable.

Everything else logs through the package-level slog functions.
*/
package logging
