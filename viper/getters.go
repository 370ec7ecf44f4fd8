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

import "time"

func (v *viperImpl) GetBool(key string) bool                           { return v.vpr.GetBool(key) }
func (v *viperImpl) GetString(key string) string                       { return v.vpr.GetString(key) }
func (v *viperImpl) GetInt(key string) int                             { return v.vpr.GetInt(key) }
func (v *viperImpl) GetInt32(key string) int32                         { return v.vpr.GetInt32(key) }
func (v *viperImpl) GetInt64(key string) int64                         { return v.vpr.GetInt64(key) }
func (v *viperImpl) GetUint(key string) uint                           { return v.vpr.GetUint(key) }
func (v *viperImpl) GetUint16(key string) uint16                       { return v.vpr.GetUint16(key) }
func (v *viperImpl) GetUint32(key string) uint32                       { return v.vpr.GetUint32(key) }
func (v *viperImpl) GetUint64(key string) uint64                       { return v.vpr.GetUint64(key) }
func (v *viperImpl) GetFloat64(key string) float64                     { return v.vpr.GetFloat64(key) }
func (v *viperImpl) GetDuration(key string) time.Duration              { return v.vpr.GetDuration(key) }
func (v *viperImpl) GetTime(key string) time.Time                      { return v.vpr.GetTime(key) }
func (v *viperImpl) GetIntSlice(key string) []int                      { return v.vpr.GetIntSlice(key) }
func (v *viperImpl) GetStringSlice(key string) []string                { return v.vpr.GetStringSlice(key) }
func (v *viperImpl) GetStringMap(key string) map[string]interface{}    { return v.vpr.GetStringMap(key) }
func (v *viperImpl) GetStringMapString(key string) map[string]string   { return v.vpr.GetStringMapString(key) }
func (v *viperImpl) GetStringMapStringSlice(key string) map[string][]string {
	return v.vpr.GetStringMapStringSlice(key)
}
