// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags with
environment-variable fallback.

Required settings:

  - DATABASE_URL (-d): connection string, or a file path for sqlite
  - AUTHOR_KEY_SALT (--author-salt): secret for author key HMAC
  - QUESTION_SLUG_SALT (--slug-salt): secret for share slug generation

Optional settings:

  - PORT (-p): server port (default 3321)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - BASE_URL (--base-url): public base for share links
*/
package cliparse
