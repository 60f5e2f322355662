package index

import "sync"

// Store serves the currently published index. Readers never observe a
// partially built index: Publish swaps the whole value under the write lock.
type Store struct {
	mu      sync.RWMutex
	current *Index
}

// NewStore returns a store serving the empty index.
func NewStore() *Store {
	return &Store{current: Empty()}
}

// Current returns the published index. Callers that read rendered files should
// go through the store methods instead so a concurrent publish cannot remove
// the generation they are reading from.
func (s *Store) Current() *Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Publish makes next visible to readers and returns the index it replaced.
func (s *Store) Publish(next *Index) *Index {
	if next == nil {
		next = Empty()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.current
	s.current = next
	return previous
}

func (s *Store) GetQuiz(articleID, quizID string) (Quiz, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.GetQuiz(articleID, quizID)
}

func (s *Store) GetArticleConfig(id string) (ArticleConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.GetArticleConfig(id)
}

func (s *Store) HasID(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.HasID(id)
}

// ReadArticle holds the read lock for the duration of the file read.
func (s *Store) ReadArticle(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.ReadArticle(id)
}

func (s *Store) GetCourse(id string) (Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.GetCourse(id)
}

func (s *Store) GetExercise(id string) (Exercise, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.GetExercise(id)
}

func (s *Store) Courses() []Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Courses()
}

func (s *Store) ArticleIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.ArticleIDs()
}

func (s *Store) ExerciseIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.ExerciseIDs()
}
