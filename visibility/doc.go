// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package visibility decides what a given viewer may see and do on a
question. It is the single rule set every surface consults; handlers never
re-derive gating logic inline.

The rules, all of which must hold simultaneously:

  - voting requires an open phase, an authenticated viewer, and no prior ballot
  - editing one's reason requires an open phase and an existing ballot
  - aggregate results show once the phase leaves open, or early to a viewer
    who has already voted (their ballot is cast; no herding risk remains)
  - the author may toggle discussion any time after voting ends
  - anyone may read an enabled discussion once voting ends
  - posting requires having voted; non-voters read but never post
*/
package visibility
