// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes
// through the lexer and the parser. They guard against panics and hangs,
// and check that every accepted document survives a render/reparse cycle.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
