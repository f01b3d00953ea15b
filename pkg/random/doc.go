// Package random reads cryptographically secure random data straight from the kernel using
// [getrandom(2)].
//
// [getrandom(2)]: https://man7.org/linux/man-pages/man2/getrandom.2.html
package random
