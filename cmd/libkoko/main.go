// Package main builds the shared-library form of the keyword matcher,
// exporting the koko_keywords_match symbol for non-Go callers. Build with
// -buildmode=c-shared; the release workflow cross-compiles it per target.
package main

/*
#include <stdint.h>
*/
import "C"

import (
	"context"
	"sync"

	"keyword-match-service/internal/config"
	"keyword-match-service/internal/domain"
	"keyword-match-service/internal/matcher"
	"keyword-match-service/internal/source"
	"keyword-match-service/internal/upstream"
)

var (
	initOnce sync.Once
	shared   *matcher.Matcher
	initErr  error
)

// sharedMatcher lazily builds one process-wide matcher from env config.
func sharedMatcher() (*matcher.Matcher, error) {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		var src domain.KeywordSource
		if cfg.Keywords.File != "" {
			src, initErr = source.NewFile(cfg.Keywords.File)
			if initErr != nil {
				return
			}
		} else {
			url, err := cfg.Keywords.ResolveURL()
			if err != nil {
				initErr = err
				return
			}
			src = upstream.NewClient(url, cfg.Keywords.Timeout, cfg.Keywords.DefaultTTL)
		}

		shared = matcher.New(src, nil, nil)
	})
	return shared, initErr
}

// koko_keywords_match returns 1 when input matches the filter's keyword
// set, 0 when it does not, and a negated domain error code on failure.
// version may be NULL. Only NULL input or filter is rejected; empty
// strings match normally. The return is pointer-sized on every target,
// including LLP64 ones.
//
//export koko_keywords_match
func koko_keywords_match(input, filter, version *C.char) C.intptr_t {
	if input == nil || filter == nil {
		return -C.intptr_t(domain.CodeParseError)
	}

	m, err := sharedMatcher()
	if err != nil {
		return -C.intptr_t(domain.ErrorCode(err))
	}

	ver := ""
	if version != nil {
		ver = C.GoString(version)
	}

	result, err := m.Match(context.Background(), C.GoString(input), C.GoString(filter), ver)
	if err != nil {
		return -C.intptr_t(domain.ErrorCode(err))
	}

	if result.Matched {
		return 1
	}
	return 0
}

func main() {}
