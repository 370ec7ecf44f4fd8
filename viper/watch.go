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
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig implements Viper. It watches the directory holding the
// resolved config file (editors often replace the file via rename rather
// than an in-place write, which a file-level watch would miss) and
// re-reads the config whenever that file is written or recreated.
func (v *viperImpl) WatchConfig(ctx context.Context) error {
	file := v.vpr.ConfigFileUsed()
	if file == "" {
		return ErrorParamMissing.Error(nil)
	}
	dir := filepath.Dir(file)

	w, e := fsnotify.NewWatcher()
	if e != nil {
		return e
	}
	if e = w.Add(dir); e != nil {
		_ = w.Close()
		return e
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(file) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if re := v.vpr.ReadInConfig(); re != nil {
					continue
				}
				v.mu.Lock()
				reload := v.remoteReload
				v.mu.Unlock()
				if reload != nil {
					reload()
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return nil
}
