/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package viper

import (
	"strings"

	vpr "github.com/spf13/viper"
)

// Unset implements Viper. Vanilla viper has no removal primitive, so this
// rebuilds the instance from AllSettings with the requested keys pruned.
func (v *viperImpl) Unset(key ...string) error {
	if len(key) == 0 {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	settings := v.vpr.AllSettings()
	for _, k := range key {
		if k == "" {
			continue
		}
		deleteKeyPath(settings, strings.Split(strings.ToLower(k), "."))
	}

	fresh := vpr.New()
	if e := fresh.MergeConfigMap(settings); e != nil {
		return e
	}
	v.vpr = fresh
	return nil
}

func deleteKeyPath(m map[string]interface{}, path []string) {
	if len(path) == 0 {
		return
	}
	if len(path) == 1 {
		delete(m, path[0])
		return
	}
	next, ok := m[path[0]].(map[string]interface{})
	if !ok {
		return
	}
	deleteKeyPath(next, path[1:])
}
