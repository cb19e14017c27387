package chunkplan

// Chunk describes one contiguous byte range of a source file.
// Indices are dense from 0 in file order.
type Chunk struct {
	Index  int
	Offset int64
	Length int64
}

// Count returns the number of chunks needed to cover fileSize bytes
// with chunks of chunkSize bytes, i.e. ceil(fileSize / chunkSize).
func Count(fileSize, chunkSize int64) int {
	return int((fileSize + chunkSize - 1) / chunkSize)
}

// Plan tiles the range [0, fileSize) with chunks of chunkSize bytes.
// Only the last chunk may be shorter. A fileSize of 0 yields an empty
// plan. chunkSize must be positive; callers validate it before planning.
func Plan(fileSize, chunkSize int64) []Chunk {
	chunks := make([]Chunk, 0, Count(fileSize, chunkSize))
	for offset := int64(0); offset < fileSize; offset += chunkSize {
		length := chunkSize
		if offset+length > fileSize {
			length = fileSize - offset
		}
		chunks = append(chunks, Chunk{
			Index:  len(chunks),
			Offset: offset,
			Length: length,
		})
	}
	return chunks
}
