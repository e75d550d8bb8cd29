package fu

import (
	"runtime"
	"sync"
)

/*
ForEach calls body for every index in [0,length) using at most limit goroutines.
Zero or negative limit means runtime.NumCPU()
*/
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return
	}
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	if limit == 1 {
		for i := 0; i < length; i++ {
			body(i)
		}
		return
	}
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)
	for i := 0; i < length; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			body(i)
		}(i)
	}
	wg.Wait()
}

/*
ForEachE is ForEach for failing bodies, it returns the error of the lowest failed index
*/
func ForEachE(length, limit int, body func(i int) error) error {
	errs := make([]error, Maxi(length, 0))
	ForEach(length, limit, func(i int) {
		errs[i] = body(i)
	})
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
