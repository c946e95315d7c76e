// Package encoding はネットワークに依存しない純粋な変換ユーティリティを提供します。
package encoding

import "encoding/binary"

const (
	wavHeaderSize = 44

	numChannels   = 1
	bitsPerSample = 16
)

// EncodeWAV は生のPCMバイト列（モノラル・16bit・リトルエンディアン）を
// 標準的なWAVコンテナに包んで返します。
// ヘッダは RIFF/WAVE チャンク記述子、PCM形式コード1の `fmt ` サブチャンク、
// ペイロード長を宣言する `data` サブチャンクで構成されます。
func EncodeWAV(pcm []byte, sampleRate int) []byte {
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	buf := make([]byte, wavHeaderSize+len(pcm))

	// RIFF チャンク記述子
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+len(pcm)))
	copy(buf[8:12], "WAVE")

	// fmt サブチャンク
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // Subchunk1Size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // AudioFormat (PCM)
	binary.LittleEndian.PutUint16(buf[22:24], numChannels)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], bitsPerSample)

	// data サブチャンク
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(len(pcm)))

	copy(buf[wavHeaderSize:], pcm)
	return buf
}
