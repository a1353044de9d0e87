// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

// create a table for pool events.
// amounts are uint64 stored bit-for-bit in signed integer columns.
const eventTableSchema = `
create table if not exists event (
	seq integer primary key autoincrement,
	kind text not null,
	pool blob(20) not null,
	account blob(20) not null,
	base integer not null,
	shares integer not null,
	fee integer not null,
	epoch integer not null
);

CREATE INDEX if not exists poolEpochIndex on event(pool, epoch);
CREATE INDEX if not exists accountIndex on event(account);
`
