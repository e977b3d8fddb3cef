package brickmos

// IntMin returns the smallest of the given ints.
func IntMin(a int, elements ...int) int {
	res := a
	for _, val := range elements {
		if val < res {
			res = val
		}
	}
	return res
}

// IntMax returns the largest of the given ints.
func IntMax(a int, elements ...int) int {
	res := a
	for _, val := range elements {
		if val > res {
			res = val
		}
	}
	return res
}
