/*

Process of compilation

Program Text ->
	reader ->
Characters with positions, source lines echoed ->
	scan ->
Tokens in a lookahead window ->
	front (parse, type check and lower in one pass) ->
Stack Machine Assembly Text (.stm)

Every stage reports into the paged listing (.lst).
The first compile error stops the compilation.

*/
package compiler
