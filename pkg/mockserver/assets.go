package mockserver

import _ "embed"

// duckJPEG is the image served by /blob.
//
//go:embed assets/duck.jpg
var duckJPEG []byte

// arrayBufferPayload is the body served by /arrayBuffer.
var arrayBufferPayload = []byte{0x00, 0x01, 0x02, 0x03}
