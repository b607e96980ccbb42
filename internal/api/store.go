package api

import lru "github.com/hashicorp/golang-lru/v2"

const maxStoredReports = 100

// reportStore keeps the most recently stored rendered reports by run id.
type reportStore struct {
	cache *lru.Cache[string, []byte]
}

func newReportStore() *reportStore {
	return newReportStoreSize(maxStoredReports)
}

func newReportStoreSize(size int) *reportStore {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		// only reachable with a non-positive size
		panic(err)
	}
	return &reportStore{cache: cache}
}

func (s *reportStore) Put(id string, report []byte) {
	s.cache.Add(id, report)
}

func (s *reportStore) Get(id string) ([]byte, bool) {
	return s.cache.Get(id)
}
