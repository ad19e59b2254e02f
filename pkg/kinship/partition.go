package kinship

import "fmt"

// JavaHashCode computes Java's String.hashCode over the UTF-16 code units of
// s. Dataset generators use it to spread detail records over files.
func JavaHashCode(s string) int32 {
	var h int32
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			h = 31*h + int32(0xD800+(r>>10))
			h = 31*h + int32(0xDC00+(r&0x3FF))
			continue
		}
		h = 31*h + int32(r)
	}
	return h
}

// DetailsPartition returns which of n detail files holds id.
func DetailsPartition(id string, n int) int {
	if n <= 1 {
		return 0
	}
	h := int64(JavaHashCode(id))
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}

// DetailsFile names the detail file for partition i.
func DetailsFile(i int) string {
	return fmt.Sprintf("details%d.json", i)
}
