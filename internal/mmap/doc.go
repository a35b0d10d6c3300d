// Package mmap maps files read-only into memory.
//
// The local blob store uses it to read stream files without copying them
// through a read buffer:
//
//	m, err := mmap.Open("normals/abc.npk")
//	if err != nil { ... }
//	defer m.Close()
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2); Windows uses CreateFileMapping and
// MapViewOfFile, where Advise is a no-op. Bytes must not be used after Close.
package mmap
