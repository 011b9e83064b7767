// Copyright 2025 The mytorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mytorch_test

import (
	"regexp"
	"testing"

	"github.com/mytorch/mytorch"
)

func TestVersion(t *testing.T) {
	if got := mytorch.Version(); !regexp.MustCompile(`^\d+\.\d+\.\d+$`).MatchString(got) {
		t.Errorf("Version() = %q, want semantic version", got)
	}
	if got := mytorch.Version(); got != "0.1.0" {
		t.Errorf("Version() = %q, want 0.1.0", got)
	}
}
