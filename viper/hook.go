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
	libmap "github.com/go-viper/mapstructure/v2"
)

// HookRegister implements Viper.
func (v *viperImpl) HookRegister(hook interface{}) {
	h, ok := hook.(libmap.DecodeHookFunc)
	if !ok {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hooks = append(v.hooks, h)
}

// HookReset implements Viper.
func (v *viperImpl) HookReset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hooks = nil
}

// composedHook chains the default scalar-conversion hooks ahead of any
// caller-registered ones, matching viper's own built-in decode defaults.
func (v *viperImpl) composedHook() libmap.DecodeHookFunc {
	v.mu.Lock()
	extra := append([]libmap.DecodeHookFunc(nil), v.hooks...)
	v.mu.Unlock()

	base := []libmap.DecodeHookFunc{
		libmap.StringToTimeDurationHookFunc(),
		libmap.StringToSliceHookFunc(","),
	}
	return libmap.ComposeDecodeHookFunc(append(base, extra...)...)
}
