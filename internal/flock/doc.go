// Package flock provides cross-platform file locking.
//
// The file backend uses it to serialize snapshot writes between
// concurrent pmlite processes. Locks are exclusive and non-blocking: a
// second writer fails immediately instead of queueing.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
//	if err := flock.Exclusive(file.Fd()); err != nil {
//	    // lock not acquired, another process holds it
//	}
//	defer flock.Unlock(file.Fd())
package flock
