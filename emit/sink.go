// Copyright 2020-present Open Networking Foundation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package emit

import (
	"bytes"
	"os"
)

// Sink is the single capability the Emitter needs: somewhere to append
// bytes. It replaces the originating implementation's process-wide
// output-mode selector and global buffer with an explicit parameter, so
// that two translations can run concurrently against independent sinks
// (spec section 9's redesign flag).
type Sink interface {
	Write(p []byte) (int, error)
}

// StdoutSink appends directly to os.Stdout.
func StdoutSink() Sink {
	return os.Stdout
}

// BufferSink accumulates emitted bytes in memory instead of writing
// them anywhere, for tests and for callers that want the generated text
// as a string rather than a stream.
type BufferSink struct {
	buf bytes.Buffer
}

// NewBufferSink returns an empty BufferSink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

// Write implements Sink.
func (s *BufferSink) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

// String returns everything written to the sink so far.
func (s *BufferSink) String() string {
	return s.buf.String()
}

// Bytes returns everything written to the sink so far.
func (s *BufferSink) Bytes() []byte {
	return s.buf.Bytes()
}
