package extract

// SplitChunks splits text into chunks of at most size characters, covering
// it in sequence with no overlap. Empty text yields a single empty chunk.
func SplitChunks(text string, size int) []string {
	if text == "" {
		return []string{""}
	}
	var chunks []string
	for start := 0; start < len(text); start += size {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks
}

// PriorityOrder returns the search order for n chunks as a permutation of
// [0, n). Financial statements typically occur mid-document, so chunks 2-4
// are searched first when there are enough of them; the cover page (chunk
// 0) is searched last because it rarely yields values.
func PriorityOrder(n int) []int {
	if n <= 1 {
		return []int{0}
	}
	order := make([]int, 0, n)
	if n > 4 {
		order = append(order, 2, 3, 4, 1)
		for i := 5; i < n; i++ {
			order = append(order, i)
		}
	} else {
		for i := 1; i < n; i++ {
			order = append(order, i)
		}
	}
	return append(order, 0)
}
