// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally reduces a question's votes into aggregate results.

Compute produces per-option counts, rounded percentages, reason buckets,
and two notions of winner:

  - WinnerIndex: the plurality winner; lowest index wins ties
  - ResolvedIndex: the author's final answer, when one exists

DisplayWinner prefers the resolved answer, so a question resolved against
the crowd shows the author's pick, not the vote leader.

Zero votes is a defined state, not an error: all percentages are 0 and
WinnerIndex is 0 with TotalVotes 0. Vote rows with an option index outside
the question's range are skipped and excluded from TotalVotes.
*/
package tally
