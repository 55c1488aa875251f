// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.18
//

package main

import (
	"fmt"
	"os"

	m "github.com/mkhts/osgrid"
	"gopkg.in/yaml.v3"
)

// Load conversion options from a YAML file. Keys that are not present keep
// the defaults of NewGridOpt.
func loadGridOpt(path string) (*m.GridOpt, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read option file: %w", err)
	}

	opt := m.NewGridOpt()
	if err := yaml.Unmarshal(b, opt); err != nil {
		return nil, fmt.Errorf("failed to parse option file %s: %w", path, err)
	}
	if opt.Tolerance <= 0 {
		return nil, fmt.Errorf("tolerance must be positive: %g", opt.Tolerance)
	}
	return opt, nil
}
