//go:build !boardaudit

package goslingmg

const auditEnabled = false
