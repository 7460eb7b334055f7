/*
Package tupleid provides the textual identifier of one member of an indexed
family, such as a variable column or a constraint row.

The canonical format is the family name followed by the member labels in
parentheses, separated by semicolons:

	LocalNewCapacity(DE_RUHR;EAF;2030)
	ModelPeriodCost()

The same format appears in the decoding tables written next to an LP file,
so results can be mapped back to named quantities without the assembler.
*/
package tupleid
