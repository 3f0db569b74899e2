// Package config resolves the grader's runtime configuration and loads the
// score table.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--out, --scores, --locales, --theme, --debug)
//  2. Environment variables (FEEDBACK_OUT_DIR, FEEDBACK_SCORES, FEEDBACK_LOCALES,
//     FEEDBACK_THEME, FEEDBACK_DEBUG, NO_COLOR)
//  3. A .env file in the working directory (never overrides the real environment)
//  4. Hardcoded defaults
//
// # Positional Arguments
//
//   - token: opaque string copied verbatim into the result document
//   - language: "en" selects English; anything else, or nothing, selects Ukrainian
//
// # Environment Variables
//
//   - BUILD_NUMBER: copied verbatim into the result document ("" when unset)
//
// # Score Table
//
// The built-in table lives in scores.yaml and is embedded in the binary. A
// file passed with --scores replaces it entirely:
//
//	max_score: 9
//	weights:
//	  SHOULD_CONNECT_TO_ROOM: 0.3
package config
